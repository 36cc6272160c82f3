/*
Package ledger keeps customer wallets and their append-only transaction log.

Every balance change is a conditional update paired with exactly one
Transaction row in the same unit of work, so the stored balance always
equals the signed sum of the wallet's transactions.

Usage:

	svc := ledger.NewService(store, converter, ledger.Config{}, nil)

	// Top up from an external source, converting to euros
	res, err := svc.CreditWallet(ctx, ledger.CreditRequest{
		CustomerID: id,
		Amount:     decimal.NewFromInt(100),
		Currency:   "USD",
	})

	// Inside another service's transaction
	err = store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		_, err := svc.Debit(ctx, tx, walletID, ledger.Entry{Amount: deposit, Reason: "deposit for booking #1"})
		return err
	})

Debit never overdraws: a wallet whose balance is below the amount is left
untouched and ErrInsufficientFunds is returned.
*/
package ledger
