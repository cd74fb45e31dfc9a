package testutil_test

import (
	"testing"
	"time"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "categories", "transactions", "ai_analyses", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	category := testutil.CreateTestCategory(t, db, "FOOD", models.TransactionTypeExpense)
	if category.Code != "FOOD" {
		t.Errorf("expected code FOOD, got %s", category.Code)
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 1000, "SAL", time.Now())
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %f", tx.Amount)
	}
	if tx.CategoryCode == nil || *tx.CategoryCode != "SAL" {
		t.Errorf("expected category code SAL, got %v", tx.CategoryCode)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCategoryNotFound, "custom message")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
