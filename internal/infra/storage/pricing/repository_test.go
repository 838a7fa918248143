package pricing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_List_ActiveOnly(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(ruleColumns).
		AddRow(int64(1), "Weekly discount", "discount", "All", "15.00", true, nil, nil, true, now, now).
		AddRow(int64(2), "Summer", "seasonal", "SUV", "10", true, start, nil, true, now, now)

	mock.ExpectQuery(`SELECT .+ FROM pricing_rules WHERE is_active = \$1 ORDER BY id ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	rules, err := repo.List(context.Background(), domain.PricingRulesFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, domain.RuleTypeDiscount, rules[0].Type)
	assert.True(t, rules[0].Value.Equal(decimal.NewFromInt(15)))
	assert.Nil(t, rules[0].StartDate)
	require.NotNil(t, rules[1].StartDate)
	assert.Equal(t, start, *rules[1].StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO pricing_rules`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	rule, err := repo.Create(context.Background(), &domain.PricingRule{
		Name:         "Loyalty",
		Type:         domain.RuleTypeDiscount,
		Category:     domain.CategoryAll,
		Value:        decimal.NewFromInt(20),
		IsPercentage: false,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), rule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetActive_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE pricing_rules SET is_active = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING`).
		WithArgs(false, int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SetActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
