// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"enercore/internal/core/types"
	"enercore/internal/domain/resources/affiliate"
	"enercore/internal/domain/resources/bond"
	"enercore/internal/domain/resources/donation"
	"enercore/internal/domain/resources/installation"
	"enercore/internal/infrastructure/storage/postgres"
	"enercore/internal/infrastructure/storage/postgres/resource_repo"
	"enercore/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	auditLog, err := postgres.NewTransitionLog(txManager)
	if err != nil {
		log.Fatalw("failed to initialize transition log", "error", err)
	}
	defer auditLog.Close()

	nums := postgres.NewSequenceNumerator(txManager)

	if err := seedAffiliates(ctx, txManager, auditLog, nums); err != nil {
		log.Fatalw("failed to seed affiliates", "error", err)
	}
	if err := seedBonds(ctx, txManager, auditLog, nums); err != nil {
		log.Fatalw("failed to seed bonds", "error", err)
	}
	if err := seedInstallations(ctx, txManager, auditLog, nums); err != nil {
		log.Fatalw("failed to seed installations", "error", err)
	}
	if err := seedDonations(ctx, txManager, auditLog, nums); err != nil {
		log.Fatalw("failed to seed donations", "error", err)
	}

	log.Info("seeding completed")
}

func seedAffiliates(ctx context.Context, txm *postgres.TxManager, auditLog *postgres.TransitionLog, nums *postgres.SequenceNumerator) error {
	svc := affiliate.NewService(resource_repo.NewAffiliateRepo(txm), txm, auditLog, nums)

	seeds := []*affiliate.Affiliate{
		affiliate.New("", "Green Future Partners", "contact@greenfuture.example", affiliate.TypeCompany),
		affiliate.New("", "Maria Janssen", "maria@example.org", affiliate.TypeIndividual),
		affiliate.New("", "Sunrise Collective", "hello@sunrise.example", affiliate.TypeNonprofit),
	}

	for _, a := range seeds {
		a.CommissionRate = types.NewRate(2.5)
		if err := svc.Create(ctx, a); err != nil {
			return err
		}
		logger.Info(ctx, "seeded affiliate", "code", a.Code, "name", a.Name)
	}
	return nil
}

func seedBonds(ctx context.Context, txm *postgres.TxManager, auditLog *postgres.TransitionLog, nums *postgres.SequenceNumerator) error {
	svc := bond.NewService(resource_repo.NewBondRepo(txm), txm, auditLog, nums)

	b := bond.New("", "Solar Park Series A", bond.TypeFixedRate)
	b.FaceValue = types.MustMoney("250")
	b.InterestRate = types.NewRate(4.2)
	b.TermMonths = 60
	b.TotalUnits = 4000

	if err := svc.Create(ctx, b); err != nil {
		return err
	}
	logger.Info(ctx, "seeded bond", "code", b.Code, "name", b.Name)
	return nil
}

func seedInstallations(ctx context.Context, txm *postgres.TxManager, auditLog *postgres.TransitionLog, nums *postgres.SequenceNumerator) error {
	svc := installation.NewService(resource_repo.NewInstallationRepo(txm), txm, auditLog, nums)

	seeds := []*installation.Installation{
		installation.New("", "Riverside Solar Park", installation.TypeSolar, decimal.NewFromFloat(1250.5)),
		installation.New("", "Hilltop Wind Farm", installation.TypeWind, decimal.NewFromFloat(3600)),
	}

	for _, i := range seeds {
		i.Location = "Groningen"
		if err := svc.Create(ctx, i); err != nil {
			return err
		}
		logger.Info(ctx, "seeded installation", "code", i.Code, "name", i.Name)
	}
	return nil
}

func seedDonations(ctx context.Context, txm *postgres.TxManager, auditLog *postgres.TransitionLog, nums *postgres.SequenceNumerator) error {
	svc := donation.NewService(resource_repo.NewDonationRepo(txm), txm, auditLog, nums)

	d := donation.New("", "Jan de Vries", donation.TypeOneTime, types.MustMoney("150"))
	d.DonorEmail = "jan@example.org"
	d.Campaign = "spring-2026"

	if err := svc.Create(ctx, d); err != nil {
		return err
	}
	logger.Info(ctx, "seeded donation", "number", d.Number, "donor", d.DonorName)
	return nil
}
