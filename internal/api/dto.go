package api

import (
	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/service"
)

// JSON shapes for the API. Amounts serialize as decimal strings.

type userJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Image    string `json:"image,omitempty"`
}

type memberJSON struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Role     string   `json:"role"`
	JoinedAt int64    `json:"joinedAt"`
	User     userJSON `json:"user"`
}

type tripJSON struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location,omitempty"`
	StartDate   int64        `json:"startDate,omitempty"`
	EndDate     int64        `json:"endDate,omitempty"`
	Currency    string       `json:"currency"`
	ShareLink   string       `json:"shareLink"`
	CreatedAt   int64        `json:"createdAt"`
	Members     []memberJSON `json:"members"`
}

type shareJSON struct {
	MemberID    string          `json:"memberId"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
}

type expenseJSON struct {
	ID          string          `json:"id"`
	TripID      string          `json:"tripId"`
	PayerID     string          `json:"payerId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        int64           `json:"date"`
	CreatedAt   int64           `json:"createdAt"`
	Shares      []shareJSON     `json:"shares"`
}

type transferJSON struct {
	ID           string          `json:"id"`
	TripID       string          `json:"tripId"`
	FromMemberID string          `json:"fromMemberId"`
	ToMemberID   string          `json:"toMemberId"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    int64           `json:"createdAt"`
}

type inviteJSON struct {
	ID        string `json:"id"`
	TripID    string `json:"tripId"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	Status    string `json:"status"`
	ExpiresAt int64  `json:"expiresAt"`
	CreatedAt int64  `json:"createdAt"`
}

type notificationJSON struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	TripID    string `json:"tripId,omitempty"`
	InviteID  string `json:"inviteId,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"createdAt"`
}

type balanceJSON struct {
	MemberID   string          `json:"memberId"`
	MemberName string          `json:"memberName"`
	Paid       decimal.Decimal `json:"paid"`
	Owed       decimal.Decimal `json:"owed"`
	Balance    decimal.Decimal `json:"balance"`
}

type settlementJSON struct {
	FromMemberID string          `json:"fromMemberId"`
	From         string          `json:"from"`
	ToMemberID   string          `json:"toMemberId"`
	To           string          `json:"to"`
	Amount       decimal.Decimal `json:"amount"`
}

type balanceReportJSON struct {
	Balances    []balanceJSON                         `json:"balances"`
	Settlements []settlementJSON                      `json:"settlements"`
	DebtMatrix  map[string]map[string]decimal.Decimal `json:"debtMatrix"`
	Residual    decimal.Decimal                       `json:"residual"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Username: u.Username, Image: u.Image}
}

func toTripJSON(t *models.Trip) tripJSON {
	members := make([]memberJSON, len(t.Members))
	for i, m := range t.Members {
		members[i] = memberJSON{
			ID:       m.ID,
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
			User:     toUserJSON(m.User),
		}
	}
	return tripJSON{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Location:    t.Location,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Currency:    t.Currency,
		ShareLink:   t.ShareLink,
		CreatedAt:   t.CreatedAt,
		Members:     members,
	}
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	shares := make([]shareJSON, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = shareJSON{MemberID: s.MemberID, ShareAmount: s.ShareAmount}
	}
	return expenseJSON{
		ID:          e.ID,
		TripID:      e.TripID,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		Shares:      shares,
	}
}

func toTransferJSON(t *models.Transfer) transferJSON {
	return transferJSON{
		ID:           t.ID,
		TripID:       t.TripID,
		FromMemberID: t.FromMemberID,
		ToMemberID:   t.ToMemberID,
		Amount:       t.Amount,
		CreatedAt:    t.CreatedAt,
	}
}

func toInviteJSON(i *models.Invite) inviteJSON {
	return inviteJSON{
		ID:        i.ID,
		TripID:    i.TripID,
		Email:     i.Email,
		Token:     i.Token,
		Status:    i.Status,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}

func toNotificationJSON(n *models.Notification) notificationJSON {
	return notificationJSON{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		TripID:    n.TripID,
		InviteID:  n.InviteID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func toBalanceReportJSON(report *service.BalanceReport) balanceReportJSON {
	balances := make([]balanceJSON, len(report.Balances))
	for i, b := range report.Balances {
		balances[i] = balanceJSON{
			MemberID:   b.MemberID,
			MemberName: b.MemberName,
			Paid:       b.Paid,
			Owed:       b.Owed,
			Balance:    b.Balance,
		}
	}
	settlements := make([]settlementJSON, len(report.Settlements))
	for i, s := range report.Settlements {
		settlements[i] = settlementJSON{
			FromMemberID: s.FromMemberID,
			From:         s.FromName,
			ToMemberID:   s.ToMemberID,
			To:           s.ToName,
			Amount:       s.Amount,
		}
	}
	return balanceReportJSON{
		Balances:    balances,
		Settlements: settlements,
		DebtMatrix:  report.DebtMatrix,
		Residual:    report.Residual,
	}
}
