package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/app"
	"github.com/seedswap/seedswap/store"
	"github.com/seedswap/seedswap/x"
	"github.com/seedswap/seedswap/x/escrow"
	"github.com/seedswap/seedswap/x/token"
)

var demoRefund bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the full escrow scenario against an in-memory store",
	Long: `demo runs the whole lifecycle in-process: genesis funds two demo
wallets, the maker opens an escrow, and either a taker completes the
swap or the maker refunds it. Every transaction goes through the same
router and cache-wrap execution path a deployment would use.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoRefund, "refund", false, "Refund the escrow instead of taking it")
}

// demoAuth authenticates whatever conditions were stored in the context.
type demoAuth struct{}

type demoAuthKey struct{}

func withSigner(ctx seedswap.Context, conds ...seedswap.Condition) seedswap.Context {
	return context.WithValue(ctx, demoAuthKey{}, conds)
}

func (demoAuth) GetConditions(ctx seedswap.Context) []seedswap.Condition {
	conds, _ := ctx.Value(demoAuthKey{}).([]seedswap.Condition)
	return conds
}

func (a demoAuth) HasAddress(ctx seedswap.Context, addr seedswap.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// demo wallets are plain derived conditions, nobody holds keys here
	alice := seedswap.NewCondition("demo", "wallet", []byte("alice"))
	bob := seedswap.NewCondition("demo", "wallet", []byte("bob"))

	db := store.MemStore()
	ctrl := token.NewController()
	assetX := token.AssetAddr(cfg.TickerX)
	assetY := token.AssetAddr(cfg.TickerY)

	genesis, err := demoGenesis(cfg, alice.Address(), bob.Address())
	if err != nil {
		return err
	}
	if err := (token.Initializer{}).FromGenesis(genesis, db); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}

	r := app.NewRouter()
	escrow.RegisterRoutes(r, x.ChainAuth(demoAuth{}), ctrl)

	bech := func(a seedswap.Address) string {
		s, err := a.Bech32(cfg.Bech32HRP)
		if err != nil {
			return a.String()
		}
		return s
	}
	balances := func(stage string) {
		color.Green("\n%s", stage)
		fmt.Printf("  maker %s: %d %s, %d %s\n",
			color.CyanString(bech(alice.Address())),
			must(ctrl.Balance(db, alice.Address(), assetX)), cfg.TickerX,
			must(ctrl.Balance(db, alice.Address(), assetY)), cfg.TickerY)
		fmt.Printf("  taker %s: %d %s, %d %s\n",
			color.CyanString(bech(bob.Address())),
			must(ctrl.Balance(db, bob.Address(), assetX)), cfg.TickerX,
			must(ctrl.Balance(db, bob.Address(), assetY)), cfg.TickerY)
	}

	balances("genesis")

	// maker opens the escrow
	ctx := withSigner(context.Background(), alice)
	res, err := app.DeliverTx(r, ctx, db, &demoTx{&escrow.CreateMsg{
		Seed:          cfg.Seed,
		Maker:         alice.Address(),
		AssetX:        assetX,
		AssetY:        assetY,
		DepositAmount: cfg.DepositAmount,
		ReceiveAmount: cfg.ReceiveAmount,
	}})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	escrowID := seedswap.Address(res.Data)
	color.Green("\nescrow opened")
	fmt.Printf("  record:  %s\n", color.CyanString(bech(escrowID)))

	obj, err := escrow.NewBucket().Get(db, escrowID)
	if err != nil {
		return err
	}
	esc := escrow.AsEscrow(obj)
	custody := escrow.CustodyCondition(esc.Maker, esc.Seed, esc.Bump).Address()
	fmt.Printf("  custody: %s (bump %d)\n", color.CyanString(bech(custody)), esc.Bump)
	fmt.Printf("  offers %d %s for %d %s\n", cfg.DepositAmount, cfg.TickerX, cfg.ReceiveAmount, cfg.TickerY)

	if demoRefund {
		ctx = withSigner(context.Background(), alice)
		if _, err := app.DeliverTx(r, ctx, db, &demoTx{&escrow.RefundMsg{
			EscrowID: escrowID,
			AssetX:   assetX,
		}}); err != nil {
			return fmt.Errorf("refund: %w", err)
		}
		balances("after refund")
	} else {
		ctx = withSigner(context.Background(), bob)
		if _, err := app.DeliverTx(r, ctx, db, &demoTx{&escrow.TakeMsg{
			EscrowID: escrowID,
			Maker:    esc.Maker,
			AssetX:   assetX,
			AssetY:   assetY,
		}}); err != nil {
			return fmt.Errorf("take: %w", err)
		}
		balances("after take")
	}

	// the record is the lock: the second terminal operation must fail
	ctx = withSigner(context.Background(), alice)
	if _, err := app.DeliverTx(r, ctx, db, &demoTx{&escrow.RefundMsg{
		EscrowID: escrowID,
		AssetX:   assetX,
	}}); err != nil {
		color.Yellow("\nsecond terminal operation rejected: %v", err)
	}

	return nil
}

// demoGenesis builds the token genesis options for the two demo wallets.
func demoGenesis(cfg *Config, maker, taker seedswap.Address) (seedswap.Options, error) {
	state := map[string]interface{}{
		"tokens": []map[string]interface{}{
			{"ticker": cfg.TickerX, "decimals": 6},
			{"ticker": cfg.TickerY, "decimals": 6},
		},
		"holdings": []map[string]interface{}{
			{"owner": maker, "ticker": cfg.TickerX, "balance": cfg.DepositAmount},
			{"owner": taker, "ticker": cfg.TickerY, "balance": cfg.ReceiveAmount},
		},
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return seedswap.Options{"token": raw}, nil
}

// demoTx wraps a single message. The demo never serializes transactions,
// it hands them straight to the router.
type demoTx struct {
	msg seedswap.Msg
}

var _ seedswap.Tx = (*demoTx)(nil)

func (tx *demoTx) GetMsg() (seedswap.Msg, error) { return tx.msg, nil }

func (tx *demoTx) Marshal() ([]byte, error) { return tx.msg.Marshal() }

func (tx *demoTx) Unmarshal([]byte) error {
	return fmt.Errorf("demo transactions are in-process only")
}

func must(v uint64, err error) uint64 {
	if err != nil {
		panic(err)
	}
	return v
}
