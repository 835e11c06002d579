package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"karaokehub/internal/database"
	"karaokehub/internal/domain"
)

func main() {
	db, err := database.Connect("karaoke.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM business_hours")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM tenants")

	// ================== TENANTS ==================
	log.Println("Creating tenants...")
	tenants := make([]domain.Tenant, 0, 2)
	for _, t := range []struct {
		slug, name, tz string
		plan           domain.Plan
	}{
		{"neon-nights", "Neon Nights Karaoke", "Asia/Almaty", domain.PlanStandard},
		{"sing-city", "Sing City", "Europe/Berlin", domain.PlanFree},
	} {
		maxRooms, maxBookings := domain.PlanLimits(t.plan)
		tenant := domain.Tenant{
			Slug:                t.slug,
			Name:                t.name,
			ContactEmail:        fmt.Sprintf("hello@%s.example", t.slug),
			Timezone:            t.tz,
			Currency:            "USD",
			Plan:                t.plan,
			MaxRooms:            maxRooms,
			MaxBookingsPerMonth: maxBookings,
			IsActive:            true,
		}
		db.Create(&tenant)
		hours := domain.DefaultBusinessHours(tenant.ID)
		db.Create(&hours)
		tenants = append(tenants, tenant)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	superHash, _ := bcrypt.GenerateFromPassword([]byte("super123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		Email:        "super@karaokehub.example",
		PasswordHash: string(superHash),
		Name:         "Platform Admin",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	})
	log.Println("Super admin: super@karaokehub.example / super123")

	for i := range tenants {
		tid := tenants[i].ID

		adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			TenantID:     &tid,
			Email:        fmt.Sprintf("admin@%s.example", tenants[i].Slug),
			PasswordHash: string(adminHash),
			Name:         "Venue Admin",
			Role:         domain.RoleAdmin,
			IsActive:     true,
		})

		staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			TenantID:     &tid,
			Email:        fmt.Sprintf("staff@%s.example", tenants[i].Slug),
			PasswordHash: string(staffHash),
			Name:         "Front Desk",
			Role:         domain.RoleStaff,
			IsActive:     true,
		})
		log.Printf("Tenant %s: admin@%s.example / admin123, staff@%s.example / staff123",
			tenants[i].Slug, tenants[i].Slug, tenants[i].Slug)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")
	categories := []domain.RoomCategory{domain.RoomStandard, domain.RoomVIP, domain.RoomParty, domain.RoomDuet}
	rooms := make([]domain.Room, 0, 6)
	for _, tenant := range tenants {
		for j := 1; j <= 3; j++ {
			room := domain.Room{
				TenantID:     tenant.ID,
				Name:         fmt.Sprintf("Room %d", j),
				Capacity:     2 + rand.Intn(10),
				Category:     categories[rand.Intn(len(categories))],
				PricePerHour: 15 + float64(rand.Intn(40)),
				IsActive:     true,
			}
			db.Create(&room)
			rooms = append(rooms, room)
		}
	}

	// ================== BOOKINGS ==================
	// Non-overlapping sample bookings: one per room per day over the next
	// few days, each starting at a distinct hour.
	log.Println("Creating bookings...")
	names := []string{"Aruzhan", "Ben", "Carla", "Dmitry", "Elif"}
	count := 0
	for i, room := range rooms {
		for d := 0; d < 3; d++ {
			startHour := 12 + (i+d)%8
			day := time.Now().AddDate(0, 0, d).Truncate(24 * time.Hour)
			start := day.Add(time.Duration(startHour) * time.Hour)
			end := start.Add(time.Duration(1+rand.Intn(2)) * time.Hour)

			booking := domain.Booking{
				Reference:     uuid.NewString(),
				TenantID:      room.TenantID,
				RoomID:        room.ID,
				CustomerName:  names[rand.Intn(len(names))],
				CustomerPhone: fmt.Sprintf("+1 555 01%02d", count),
				StartTime:     start,
				EndTime:       end,
				Status:        domain.BookingConfirmed,
				TotalPrice:    end.Sub(start).Hours() * room.PricePerHour,
			}
			db.Create(&booking)
			count++
		}
	}

	log.Printf("Seed complete: %d tenants, %d rooms, %d bookings", len(tenants), len(rooms), count)
}
