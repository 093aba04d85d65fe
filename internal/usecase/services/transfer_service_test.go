package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

func TestTransferFundsMovesExactAmount(t *testing.T) {
	f := newFixture(t)
	source := f.openAccount(t, "1000.00")
	destination := f.openAccount(t, "500.00")

	response, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        amountPtr("100.00"),
		Description:   "rent",
	})
	if err != nil {
		t.Fatalf("transfer funds: %v", err)
	}
	if !response.Success {
		t.Fatalf("response not successful: %s", response.Message)
	}

	transfer := *response.Data
	if transfer.ID == "" {
		t.Fatal("transfer id is empty")
	}
	if transfer.Replayed {
		t.Fatal("fresh transfer marked as replayed")
	}
	if got := transfer.Amount.StringFixed(2); got != "100.00" {
		t.Fatalf("transfer amount = %s, want 100.00", got)
	}
	if transfer.Description != "rent" {
		t.Fatalf("description = %q, want rent", transfer.Description)
	}

	fromBalance, _ := f.queryService.GetBalance(context.Background(), source.ID)
	toBalance, _ := f.queryService.GetBalance(context.Background(), destination.ID)
	if got := fromBalance.Data.Balance.StringFixed(2); got != "900.00" {
		t.Fatalf("source balance = %s, want 900.00", got)
	}
	if got := toBalance.Data.Balance.StringFixed(2); got != "600.00" {
		t.Fatalf("destination balance = %s, want 600.00", got)
	}
}

func TestTransferFundsInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	source := f.openAccount(t, "1000.00")
	destination := f.openAccount(t, "500.00")

	response, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        amountPtr("1500.00"),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if response.Success {
		t.Fatal("response reports success for an insufficient-funds transfer")
	}

	fromBalance, _ := f.queryService.GetBalance(context.Background(), source.ID)
	toBalance, _ := f.queryService.GetBalance(context.Background(), destination.ID)
	if got := fromBalance.Data.Balance.StringFixed(2); got != "1000.00" {
		t.Fatalf("source balance = %s, want unchanged 1000.00", got)
	}
	if got := toBalance.Data.Balance.StringFixed(2); got != "500.00" {
		t.Fatalf("destination balance = %s, want unchanged 500.00", got)
	}

	history, _ := f.queryService.GetTransferHistory(context.Background(), source.ID)
	if len(*history.Data) != 0 {
		t.Fatalf("ledger has %d records after a rejected transfer, want 0", len(*history.Data))
	}
}

func TestTransferFundsValidationOrder(t *testing.T) {
	f := newFixture(t)
	account := f.openAccount(t, "100.00")

	// An unknown source wins over every later check, even an invalid amount.
	_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: "no-such-account",
		ToAccountID:   account.ID,
		Amount:        amountPtr("-1.00"),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("unknown source err = %v, want ErrAccountNotFound", err)
	}

	// An unknown destination is reported before the amount is inspected.
	_, err = f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: account.ID,
		ToAccountID:   "no-such-account",
		Amount:        amountPtr("-1.00"),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("unknown destination err = %v, want ErrAccountNotFound", err)
	}

	// With both accounts resolved, the amount is checked before funds.
	_, err = f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        amountPtr("0.001"),
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("sub-unit amount err = %v, want ErrInvalidAmount", err)
	}
}

func TestTransferFundsRejectsSelfTransfer(t *testing.T) {
	f := newFixture(t)
	account := f.openAccount(t, "100.00")

	_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        amountPtr("10.00"),
	})
	if !errors.Is(err, domain.ErrSelfTransfer) {
		t.Fatalf("err = %v, want ErrSelfTransfer", err)
	}
}

func TestTransferFundsRejectsInvalidAmounts(t *testing.T) {
	f := newFixture(t)
	source := f.openAccount(t, "100.00")
	destination := f.openAccount(t, "100.00")

	for _, amount := range []string{"0", "-10.00", "0.005", "1.999"} {
		_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
			FromAccountID: source.ID,
			ToAccountID:   destination.ID,
			Amount:        amountPtr(amount),
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %s: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestTransferFundsIdempotentReplay(t *testing.T) {
	f := newFixture(t)
	source := f.openAccount(t, "1000.00")
	destination := f.openAccount(t, "500.00")

	request := models.TransferRequest{
		FromAccountID:  source.ID,
		ToAccountID:    destination.ID,
		Amount:         amountPtr("100.00"),
		IdempotencyKey: "pay-invoice-42",
	}

	first, err := f.transferService.TransferFunds(context.Background(), request)
	if err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	if first.Data.Replayed {
		t.Fatal("first transfer marked as replayed")
	}

	second, err := f.transferService.TransferFunds(context.Background(), request)
	if err != nil {
		t.Fatalf("replayed transfer: %v", err)
	}
	if !second.Data.Replayed {
		t.Fatal("second submission not marked as replayed")
	}
	if second.Data.ID != first.Data.ID {
		t.Fatalf("replay returned transfer %s, want original %s", second.Data.ID, first.Data.ID)
	}

	fromBalance, _ := f.queryService.GetBalance(context.Background(), source.ID)
	if got := fromBalance.Data.Balance.StringFixed(2); got != "900.00" {
		t.Fatalf("source balance = %s after replay, want a single 100.00 debit", got)
	}

	history, _ := f.queryService.GetTransferHistory(context.Background(), source.ID)
	if len(*history.Data) != 1 {
		t.Fatalf("ledger has %d records after replay, want 1", len(*history.Data))
	}
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	source := f.openAccount(t, "1000.00")
	destination := f.openAccount(t, "0.01")

	// 15 withdrawals of 100.00 against a 1000.00 balance; exactly 10 can land.
	const attempts = 15
	results := make(chan error, attempts)

	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
				FromAccountID: source.ID,
				ToAccountID:   destination.ID,
				Amount:        amountPtr("100.00"),
			})
			results <- err
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected transfer error: %v", err)
		}
	}

	if succeeded != 10 {
		t.Fatalf("%d transfers succeeded, want 10", succeeded)
	}
	if insufficient != 5 {
		t.Fatalf("%d transfers failed on funds, want 5", insufficient)
	}

	fromBalance, _ := f.queryService.GetBalance(context.Background(), source.ID)
	toBalance, _ := f.queryService.GetBalance(context.Background(), destination.ID)
	if got := fromBalance.Data.Balance.StringFixed(2); got != "0.00" {
		t.Fatalf("source balance = %s, want 0.00", got)
	}
	if got := toBalance.Data.Balance.StringFixed(2); got != "1000.01" {
		t.Fatalf("destination balance = %s, want 1000.01", got)
	}
}

func TestOpposingTransfersDoNotDeadlock(t *testing.T) {
	f := newFixture(t)
	a := f.openAccount(t, "1000.00")
	b := f.openAccount(t, "1000.00")

	var g errgroup.Group
	for i := 0; i < 25; i++ {
		g.Go(func() error {
			_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
				FromAccountID: a.ID,
				ToAccountID:   b.ID,
				Amount:        amountPtr("1.00"),
			})
			return err
		})
		g.Go(func() error {
			_, err := f.transferService.TransferFunds(context.Background(), models.TransferRequest{
				FromAccountID: b.ID,
				ToAccountID:   a.ID,
				Amount:        amountPtr("1.00"),
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("opposing transfers: %v", err)
	}

	balanceA, _ := f.queryService.GetBalance(context.Background(), a.ID)
	balanceB, _ := f.queryService.GetBalance(context.Background(), b.ID)
	total := balanceA.Data.Balance.Add(balanceB.Data.Balance)
	if got := total.StringFixed(2); got != "2000.00" {
		t.Fatalf("total balance = %s, want conserved 2000.00", got)
	}
}
