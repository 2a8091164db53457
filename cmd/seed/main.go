package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"carhive/internal/database"
	"carhive/internal/domain"
	"carhive/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "carhive.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payment_records")
	db.Exec("DELETE FROM support_messages")
	db.Exec("DELETE FROM support_tickets")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM cars")
	db.Exec("DELETE FROM agencies")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	agencies := repository.NewAgencyRepository(db)
	cars := repository.NewCarRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	log.Println("Creating users...")

	admin := &domain.User{
		Email:        "admin@carhive.app",
		PasswordHash: hash("admin123"),
		Role:         domain.RoleAdmin,
		Name:         "Platform Admin",
		IsActive:     true,
	}
	must(users.Create(ctx, admin))

	customers := make([]*domain.User, 0, 5)
	for i := 1; i <= 5; i++ {
		u := &domain.User{
			Email:        fmt.Sprintf("customer%d@example.com", i),
			PasswordHash: hash("customer123"),
			Role:         domain.RoleCustomer,
			Name:         fmt.Sprintf("Customer %d", i),
			Phone:        fmt.Sprintf("+1555000%04d", i),
			IsActive:     true,
		}
		must(users.Create(ctx, u))
		customers = append(customers, u)
	}

	log.Println("Creating agencies...")

	type agencySpec struct {
		name, city string
		status     domain.AgencyStatus
	}
	specs := []agencySpec{
		{"City Wheels", "Berlin", domain.AgencyApproved},
		{"Coastal Rides", "Barcelona", domain.AgencyApproved},
		{"Nordic Motors", "Oslo", domain.AgencyPending},
	}

	agencyList := make([]*domain.Agency, 0, len(specs))
	for i, spec := range specs {
		owner := &domain.User{
			Email:        fmt.Sprintf("owner%d@example.com", i+1),
			PasswordHash: hash("owner123"),
			Role:         domain.RoleAgencyOwner,
			Name:         fmt.Sprintf("Owner %d", i+1),
			IsActive:     true,
		}
		a := &domain.Agency{
			Name:        spec.name,
			City:        spec.city,
			Email:       fmt.Sprintf("contact@%d.example.com", i+1),
			Description: fmt.Sprintf("%s rental fleet in %s", spec.name, spec.city),
			Status:      spec.status,
		}
		must(agencies.CreateWithOwner(ctx, owner, a))
		if spec.status == domain.AgencyApproved {
			now := time.Now()
			a.ApprovedAt = &now
			a.ApprovedBy = &admin.ID
			must(agencies.Update(ctx, a))
		}
		agencyList = append(agencyList, a)
	}

	log.Println("Creating cars...")

	makes := [][2]string{{"Toyota", "Corolla"}, {"VW", "Golf"}, {"BMW", "X5"}, {"Tesla", "Model 3"}, {"Ford", "Transit"}}
	categories := []domain.CarCategory{domain.CategoryEconomy, domain.CategoryCompact, domain.CategorySUV, domain.CategoryLuxury, domain.CategoryVan}

	var carList []*domain.Car
	for _, a := range agencyList[:2] {
		for i, mk := range makes {
			c := &domain.Car{
				AgencyID:    a.ID,
				Make:        mk[0],
				Model:       mk[1],
				Year:        2019 + i,
				Category:    categories[i],
				PricePerDay: float64(30 + i*25),
				Status:      domain.CarAvailable,
				Seats:       5,
			}
			must(cars.Create(ctx, c))
			carList = append(carList, c)
		}
	}

	log.Println("Creating bookings and reviews...")

	statuses := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingInProgress,
		domain.BookingCompleted,
		domain.BookingCancelled,
	}

	for i := 0; i < 20; i++ {
		car := carList[rand.Intn(len(carList))]
		customer := customers[rand.Intn(len(customers))]
		pickup := time.Now().AddDate(0, 0, -rand.Intn(60))
		days := 1 + rand.Intn(7)

		b := &domain.Booking{
			CarID:         car.ID,
			AgencyID:      car.AgencyID,
			CustomerID:    &customer.ID,
			PickupDate:    pickup,
			ReturnDate:    pickup.AddDate(0, 0, days),
			TotalPrice:    float64(days) * car.PricePerDay,
			Status:        statuses[rand.Intn(len(statuses))],
			PaymentStatus: domain.PaymentUnpaid,
		}
		if b.Status == domain.BookingConfirmed || b.Status == domain.BookingCompleted {
			b.PaymentStatus = domain.PaymentPaid
		}
		must(bookings.Create(ctx, b))

		if b.Status == domain.BookingCompleted {
			rv := &domain.Review{
				BookingID:  b.ID,
				CarID:      b.CarID,
				AgencyID:   b.AgencyID,
				CustomerID: customer.ID,
				Rating:     3 + rand.Intn(3),
				Comment:    "Smooth rental, car as described.",
			}
			rv.Cleanliness = rv.Rating
			rv.Service = rv.Rating
			rv.Value = rv.Rating
			must(reviews.Create(ctx, rv))
		}
	}

	log.Println("Seed completed.")
	log.Println("Admin login: admin@carhive.app / admin123")
	log.Println("Agency login: owner1@example.com / owner123")
	log.Println("Customer login: customer1@example.com / customer123")
}

func hash(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
