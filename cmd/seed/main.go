package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dessertly/api/internal/config"
	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/enum"
	"github.com/dessertly/api/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	email := flag.String("email", "", "Owner email address")
	password := flag.String("password", "", "Owner password")
	name := flag.String("name", "", "Owner full name")
	flag.Parse()

	// Fall back to environment variables
	if *email == "" {
		*email = os.Getenv("SEED_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *name == "" {
		*name = os.Getenv("SEED_NAME")
	}

	// Fall back to defaults
	if *email == "" {
		*email = "demo@dessertly.com"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}
	if *name == "" {
		*name = "Demo Baker"
	}

	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction: the whole demo dataset or nothing.
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	queries := database.New(tx)

	userID, err := seedOwner(ctx, queries, *email, *password, *name)
	if err != nil {
		log.Fatalf("Failed to seed owner: %v", err)
	}

	if err := seedDemoData(ctx, queries, userID); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Owner ID: %s", userID)
}

// seedOwner creates the demo account, reusing an existing one by email.
func seedOwner(ctx context.Context, q *database.Queries, email, password, name string) (uuid.UUID, error) {
	if existing, err := q.GetUserByEmail(ctx, email); err == nil {
		log.Printf("User %s already exists, reusing", email)
		return existing.ID, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := q.CreateUser(ctx, database.CreateUserParams{
		Email:          email,
		HashedPassword: string(hashed),
		FullName:       name,
		BusinessName:   pgtype.Text{String: "Dessertly Demo Bakery", Valid: true},
	})
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// seedDemoData creates a handful of clients, recipes, and orders so the
// dashboard has something to show on first login.
func seedDemoData(ctx context.Context, q *database.Queries, userID uuid.UUID) error {
	clients := []database.CreateClientParams{
		{UserID: userID, Name: "Maria Lopez", Phone: pgtype.Text{String: "555-0101", Valid: true}},
		{UserID: userID, Name: "James Chen", Email: pgtype.Text{String: "james@example.com", Valid: true}},
		{UserID: userID, Name: "Sofia Rossi", Notes: pgtype.Text{String: "prefers gluten-free", Valid: true}},
	}
	for _, c := range clients {
		if _, err := q.CreateClient(ctx, c); err != nil {
			return err
		}
	}

	recipes := []database.CreateRecipeParams{
		{
			UserID:       userID,
			Title:        "Tres Leches",
			Description:  pgtype.Text{String: "Classic sponge soaked in three milks", Valid: true},
			Instructions: "Bake the sponge, soak in the milk mixture, chill overnight, top with cream.",
			Category:     pgtype.Text{String: "cakes", Valid: true},
		},
		{
			UserID:       userID,
			Title:        "Fudge Brownies",
			Instructions: "Melt chocolate and butter, fold into batter, bake 25 minutes at 175C.",
			Category:     pgtype.Text{String: "bars", Valid: true},
		},
	}
	for _, rec := range recipes {
		if _, err := q.CreateRecipe(ctx, rec); err != nil {
			return err
		}
	}

	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	orders := []struct {
		clientName string
		date       time.Time
		status     string
		items      []database.OrderItem
	}{
		{
			clientName: "Maria Lopez",
			date:       today,
			status:     enum.OrderStatusPending,
			items: []database.OrderItem{
				{DessertName: "Chocolate Cake", Quantity: 2, UnitPrice: decimal.RequireFromString("15.50")},
				{DessertName: "Brownie", Quantity: 1, UnitPrice: decimal.RequireFromString("8.00")},
			},
		},
		{
			clientName: "James Chen",
			date:       today.AddDate(0, 0, 1),
			status:     enum.OrderStatusInProgress,
			items: []database.OrderItem{
				{DessertName: "Tres Leches", Quantity: 1, UnitPrice: decimal.RequireFromString("24.00")},
			},
		},
		{
			clientName: "Sofia Rossi",
			date:       today.AddDate(0, 0, -3),
			status:     enum.OrderStatusCompleted,
			items: []database.OrderItem{
				{DessertName: "Cheesecake", Quantity: 3, UnitPrice: decimal.RequireFromString("12.00")},
			},
		},
	}
	for _, o := range orders {
		if _, err := q.CreateOrder(ctx, database.CreateOrderParams{
			UserID:       userID,
			ClientName:   o.clientName,
			DeliveryDate: pgtype.Date{Time: o.date, Valid: true},
			Items:        o.items,
			TotalPrice:   service.DecimalToNumeric(service.OrderTotal(o.items)),
			Status:       o.status,
		}); err != nil {
			return err
		}
	}

	return nil
}
