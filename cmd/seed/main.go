// Command seed populates the properties collection with demo listings.
// Existing documents with the same propertyName are replaced, so the
// seeder is safe to run repeatedly. With -token it instead mints a
// bearer token for exercising the protected endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/infrastructure/logger"
	"github.com/yourorg/homenest/internal/infrastructure/mongodb"
	"github.com/yourorg/homenest/internal/security/auth"
	"github.com/yourorg/homenest/pkg/config"
)

func main() {
	tokenEmail := flag.String("token", "", "mint a bearer token for the given email instead of seeding")
	tokenName := flag.String("name", "Demo User", "display name claim for -token")
	tokenTTL := flag.Duration("ttl", 24*time.Hour, "token lifetime for -token")
	drop := flag.Bool("drop", false, "drop the entire properties collection before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.LogLevel)

	if *tokenEmail != "" {
		if cfg.JWTSecret == "" {
			log.Error("JWT_SECRET is required to mint tokens")
			os.Exit(1)
		}
		verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		token, err := verifier.GenerateToken(*tokenEmail, *tokenName, *tokenTTL)
		if err != nil {
			log.Error("failed to mint token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect error", slog.String("error", err.Error()))
		}
	}()

	coll := client.Database(cfg.MongoDatabase).Collection("properties")
	listings := seedListings()

	if *drop {
		if err := coll.Drop(ctx); err != nil {
			log.Error("failed to drop collection", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		names := make([]string, 0, len(listings))
		for _, p := range listings {
			names = append(names, p.PropertyName)
		}
		if _, err := coll.DeleteMany(ctx, bson.M{"propertyName": bson.M{"$in": names}}); err != nil {
			log.Error("failed to clear previous seed documents", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	docs := make([]interface{}, 0, len(listings))
	for i := range listings {
		docs = append(docs, listings[i])
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Error("failed to insert seed documents", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("seeded properties", slog.Int("count", len(listings)))
}

func daysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}

func seedListings() []domain.Property {
	residentialPlotFeatures := []string{
		"Eid congregation place", "Play ground", "Parks", "Universities",
		"Water supply", "Police box", "Mosque", "Security", "School",
		"Hospital", "Fire services", "Post office", "Graveyard", "Lakes",
		"College", "Bazaar", "Civil defense", "Banks",
	}
	commercialShedFeatures := []string{
		"Generator facility", "Water connection ready", "Dedicated parking",
		"Heavy duty main gate", "Office accommodation available",
		"Negotiable rent and advance",
	}
	warehouseFeatures := []string{
		"Office complex", "Guard room", "Toilet and washroom facilities",
		"3 phase electricity", "Loading and unloading zone",
		"Drainage system", "Security staff",
	}
	officeFeatures := []string{
		"Lift access", "Generator backup", "Security & CCTV",
		"Emergency fire exit", "Satellite / cable TV", "Wi-Fi connectivity",
		"Garden & guest parking",
	}
	apartmentFeatures := []string{
		"Security & CCTV", "Generator backup", "Intercom", "Fire exit",
		"WASA connection", "Cylinder gas", "Hot water", "Solar panels",
		"Garden / rooftop",
	}

	listings := []domain.Property{
		{
			PropertyName:       "Modhu City Phase 3 Residential Plot",
			Category:           "Land/Plot",
			PropertyType:       "Residential Plot",
			PropertyFor:        "Sale",
			PropertySize:       "6 Katha",
			Price:              14500000,
			Location:           "Mohammadpur, Dhaka",
			ConstructionStatus: "Under Development",
			TransactionType:    "New",
			ImageURL:           "https://i.ibb.co.com/G3GbRmS1/6-katha-Under-Development-Residential-Plot-for-Sale-at-Mohammadpur.jpg",
			Description:        "Ready plots near Dhanmondi and Mohammadpur surrounded by natural beauty with all civic amenities. Only 6 KM from Dhanmondi and adjacent to Shaheed Buddhijibi Basila Bridge with easy bus access.",
			Features:           residentialPlotFeatures,
			ListedBy:           domain.ListedBy{Name: "HomeNest Development", Email: "developer@homenest.com", Phone: "+8801710001100"},
			CreatedAt:          daysAgo(4),
			UpdatedAt:          daysAgo(4),
		},
		{
			PropertyName:       "Purbachal Marine City Residential Plot",
			Category:           "Land/Plot",
			PropertyType:       "Residential Plot",
			PropertyFor:        "Sale",
			PropertySize:       "5 Katha",
			Price:              12500000,
			Location:           "Purbachal, Dhaka",
			ConstructionStatus: "Ready",
			TransactionType:    "New",
			ImageURL:           "https://i.ibb.co.com/k2G4Ykc0/5-katha-Ready-Residential-Plot-for-Sale-at-Purbachal.jpg",
			Description:        "Model satellite housing project appreciated for affordable plots in convenient locations. Planned by professionals with full civic amenities.",
			Features:           residentialPlotFeatures,
			ListedBy:           domain.ListedBy{Name: "Purbachal Estates", Email: "sales@purbachalestates.com", Phone: "+8801755002200"},
			CreatedAt:          daysAgo(9),
			UpdatedAt:          daysAgo(9),
		},
		{
			PropertyName:       "Shahid Nagar Ready Residential Plot",
			Category:           "Land/Plot",
			PropertyType:       "Residential Plot",
			PropertyFor:        "Sale",
			PropertySize:       "3 Katha",
			Price:              9800000,
			Location:           "Uttar Khan, Dhaka",
			ConstructionStatus: "Ready",
			TransactionType:    "New",
			ImageURL:           "https://i.ibb.co.com/bjhcpJsf/3-katha-Ready-Residential-Plot-for-Sale-at-Uttar-Khan.jpg",
			Description:        "Fully ready plot for sale next to the Abdullahpur-Purbachal Link Road, between Uttara Model Town and Purbachal New Town, with immediate land registration.",
			Features:           []string{"Mosque", "Play ground", "School", "Universities", "Hospital"},
			ListedBy:           domain.ListedBy{Name: "Shahid Nagar Consortium", Email: "info@shahidnagar.com", Phone: "+8801301112233"},
			CreatedAt:          daysAgo(16),
			UpdatedAt:          daysAgo(16),
		},
		{
			PropertyName:       "Modhu City Extension Commercial Plot",
			Category:           "Land/Plot",
			PropertyType:       "Commercial Plot",
			PropertyFor:        "Sale",
			PropertySize:       "119 Katha",
			Price:              890000000,
			Location:           "Mohammadpur, Dhaka",
			ConstructionStatus: "Ready",
			TransactionType:    "New",
			ImageURL:           "https://i.ibb.co.com/ycsMjbBS/119-katha-Ready-Commercial-Plot-for-Sale-at-Mohammadpur.jpg",
			Description:        "Ready commercial land on Basila main road ideal for large business campuses. All documents verified.",
			Features:           residentialPlotFeatures,
			ListedBy:           domain.ListedBy{Name: "Modhu City Holdings", Email: "commercial@modhucity.com", Phone: "+8801711223344"},
			CreatedAt:          daysAgo(22),
			UpdatedAt:          daysAgo(22),
		},
		{
			PropertyName:       "Birulia Savar Commercial Shade",
			Category:           "Commercial",
			PropertyType:       "Commercial Plot",
			PropertyFor:        "Rent",
			PropertySize:       "30,000 sft / 22 Katha",
			Price:              600000,
			PriceUnit:          "monthly",
			Location:           "Birulia, Savar, Dhaka",
			ConstructionStatus: "Under Construction",
			TransactionType:    "New",
			DepositAmount:      1200000,
			AvailableFrom:      "2025-10-13",
			ImageURL:           "https://i.ibb.co.com/Wpg7d89C/30000-SFT-COMMERCIAL-SHADE-at-Birulia-Savar-Dhaka-Under-Construction.jpg",
			Description:        "30,000 sft steel shed under rapid construction. Located 5 KM from Birulia Bridge Auto Stand with generator facility, parking, and negotiable rent.",
			Features:           commercialShedFeatures,
			ListedBy:           domain.ListedBy{Name: "Savar Industrial Leasing", Email: "leasing@savarindustrial.com", Phone: "+8801714556677"},
			CreatedAt:          daysAgo(12),
			UpdatedAt:          daysAgo(12),
		},
		{
			PropertyName:       "Hemayetpur Industrial Warehouse",
			Category:           "Commercial",
			PropertyType:       "Commercial Plot",
			PropertyFor:        "Rent",
			PropertySize:       "15,200 sqft",
			Price:              300000,
			PriceUnit:          "monthly",
			Location:           "Hemayetpur, Savar, Dhaka",
			ConstructionStatus: "Ready",
			DepositAmount:      1200000,
			AvailableFrom:      "2025-09-01",
			ImageURL:           "https://i.ibb.co.com/Wpg7d89C/30000-SFT-COMMERCIAL-SHADE-at-Birulia-Savar-Dhaka-Under-Construction.jpg",
			Description:        "Industrial shed with office complex, guard room, and washroom. Heavy duty main gate, RCC floor, drainage, and negotiable terms.",
			Features:           warehouseFeatures,
			ListedBy:           domain.ListedBy{Name: "Hemayetpur Logistics Hub", Email: "contact@hemayetpurlogistics.com", Phone: "+8801788990011"},
			CreatedAt:          daysAgo(33),
			UpdatedAt:          daysAgo(33),
		},
		{
			PropertyName:       "K&A Logistics Gazipur Warehouse",
			Category:           "Commercial",
			PropertyType:       "Commercial Plot",
			PropertyFor:        "Rent",
			PropertySize:       "42 Katha",
			Price:              350000,
			PriceUnit:          "monthly",
			Location:           "Jajhor Bazar, Gazipur Sadar, Gazipur",
			ConstructionStatus: "Ready",
			DepositAmount:      2000000,
			AvailableFrom:      "2025-07-22",
			ImageURL:           "https://i.ibb.co.com/4nLh47xv/42-katha-Commercial-Plot-for-Rent-at-Gazipur-Sadar.jpg",
			Description:        "Commercial warehouse space ideal for inventory management. Strategically located near National University with good road access.",
			Features:           []string{"Inventory management support", "Wide access road", "Truck parking"},
			ListedBy:           domain.ListedBy{Name: "K&A Logistics Ltd.", Email: "warehouse@kalogistics.com", Phone: "+8801700221133"},
			CreatedAt:          daysAgo(40),
			UpdatedAt:          daysAgo(40),
		},
		{
			PropertyName:       "ABCL Citizen Tower Office Space",
			Category:           "Commercial",
			PropertyType:       "Office Space",
			PropertyFor:        "Sale",
			PropertySize:       "10,500 sqft",
			Price:              250000000,
			Location:           "Tejgaon Link Road, Dhaka",
			ConstructionStatus: "Ready",
			FloorAvailableOn:   "14th floor",
			TotalFloor:         17,
			Garages:            "Parking for 120",
			ImageURL:           "https://i.ibb.co.com/vvfY5mQ6/10500-sqft-Ready-Office-Space-for-Sale-at-Tejgaon.jpg",
			Description:        "Premium commercial tower with 4 high-speed lifts, LEED certified design, tempered glass facade, and 100% power backup.",
			Features:           officeFeatures,
			ListedBy:           domain.ListedBy{Name: "AB Constructions Ltd", Email: "corporate@abcl.com", Phone: "+8801810035305"},
			CreatedAt:          daysAgo(6),
			UpdatedAt:          daysAgo(6),
		},
		{
			PropertyName:     "Kabbokash Super Market Office Suite",
			Category:         "Commercial",
			PropertyType:     "Office Space",
			PropertyFor:      "Rent",
			PropertySize:     "710 sqft",
			Price:            100000,
			PriceUnit:        "monthly",
			Location:         "Kawran Bazar, Dhaka",
			FloorAvailableOn: "5th-10th floors",
			TotalFloor:       12,
			DepositAmount:    100000,
			AvailableFrom:    "2023-02-01",
			ImageURL:         "https://i.ibb.co.com/jv5mRt7d/710-sqft-Office-Space-for-Rent-at-Kawran-Bazar.jpg",
			Description:      "Semi-furnished office suite with private washroom, lift access, AC provisions, and generator backup.",
			Features:         officeFeatures,
			ListedBy:         domain.ListedBy{Name: "Kabbokash Super Market Authority", Email: "leasing@kabbokash.com", Phone: "+8801711223366"},
			CreatedAt:        daysAgo(14),
			UpdatedAt:        daysAgo(14),
		},
		{
			PropertyName:       "Anwar Landmark Radiance Apartment",
			Category:           "Apartment",
			PropertyType:       "Apartment/Flats",
			PropertyFor:        "Sale",
			PropertySize:       "1395 sqft",
			Price:              8000000,
			Location:           "Sayedabad, Dhaka",
			ConstructionStatus: "Under Construction",
			Bedrooms:           3,
			Bathrooms:          3,
			Balconies:          2,
			TotalFloor:         10,
			Facing:             "South",
			Garages:            "1 Parking",
			ImageURL:           "https://i.ibb.co.com/nqf6vFvT/1395-sqft-3-Beds-Under-Construction-Flats-for-Sale-at-Sayedabad.jpg",
			Description:        "Under construction residential building offering spacious units with lift, security, WASA connection, and modern amenities.",
			Features:           apartmentFeatures,
			ListedBy:           domain.ListedBy{Name: "Landmark Developments", Email: "sales@landmarkbd.com", Phone: "+8801744556677"},
			CreatedAt:          daysAgo(18),
			UpdatedAt:          daysAgo(18),
		},
		{
			PropertyName:       "Pinaki North Ridge Heights Apartment",
			Category:           "Apartment",
			PropertyType:       "Apartment/Flats",
			PropertyFor:        "Sale",
			PropertySize:       "1100 sqft",
			Price:              9000000,
			Location:           "Uttara, Dhaka",
			ConstructionStatus: "Almost Ready",
			Bedrooms:           3,
			Bathrooms:          3,
			Balconies:          2,
			TotalFloor:         11,
			Facing:             "North",
			ImageURL:           "https://i.ibb.co.com/kVfJP1dQ/1100-sqft-3-Beds-Almost-Ready-Apartment-Flats-for-Sale-at-Uttara.jpg",
			Description:        "Modern residential towers on 25 kathas with spacious open areas, multipurpose hall, children's play zone, and 24/7 CCTV security.",
			Features:           append(append([]string{}, apartmentFeatures...), "Multipurpose hall", "Children's play area", "Rooftop garden", "Deep tube well water extraction"),
			ListedBy:           domain.ListedBy{Name: "Pinaki Holdings Limited", Email: "info@pinakiholdings.com", Phone: "+8801822667788"},
			CreatedAt:          daysAgo(25),
			UpdatedAt:          daysAgo(25),
		},
		{
			PropertyName:  "Uttara Premier Furnished Apartment",
			Category:      "Apartment",
			PropertyType:  "Apartment/Flats",
			PropertyFor:   "Rent",
			PropertySize:  "2400 sqft",
			Price:         80000,
			PriceUnit:     "monthly",
			Location:      "Sector 5, Uttara, Dhaka",
			Bedrooms:      4,
			Bathrooms:     5,
			Balconies:     3,
			Garages:       "2 Car Parking",
			DepositAmount: 80000,
			AvailableFrom: "2025-11-11",
			ImageURL:      "https://i.ibb.co.com/35ycwn0D/2400-sqft-4-Beds-Apartment-Flats-for-Rent-at-Uttara.jpg",
			Description:   "Fully furnished four-bedroom apartment within walking distance to Uttara Club. Includes hot water, CCTV, security alarm, servant room, and guest parking.",
			Features:      append(append([]string{}, apartmentFeatures...), "Satellite / cable TV", "Security alarm system", "Servant toilet & room", "Guest parking"),
			ListedBy:      domain.ListedBy{Name: "Uttara Luxury Rentals", Email: "rentals@uttaraluxury.com", Phone: "+8801999776655"},
			CreatedAt:     daysAgo(8),
			UpdatedAt:     daysAgo(8),
		},
		{
			PropertyName:  "Prime Dhanmondi Modern Home",
			Category:      "Apartment",
			PropertyType:  "Apartment/Flats",
			PropertyFor:   "Rent",
			PropertySize:  "1900 sqft",
			Price:         85000,
			PriceUnit:     "monthly",
			Location:      "Road 6, Dhanmondi, Dhaka",
			Bedrooms:      3,
			Bathrooms:     4,
			Balconies:     3,
			Garages:       "1 Car Parking",
			DepositAmount: 200000,
			AvailableFrom: "2023-12-27",
			ImageURL:      "https://i.ibb.co.com/pvqXn8sq/1900-sqft-3-Beds-Apartment-Flats-for-Rent-at-Dhanmondi.jpg",
			Description:   "Semi-furnished day-care friendly apartment on Mirpur Road near Dhanmondi police station. Includes private security, hot water, lift, and easy access to premier schools.",
			Features:      append(append([]string{}, apartmentFeatures...), "Private security service", "24-hour hot water", "Garden view living area", "Nearby premium schools & supermarkets"),
			ListedBy:      domain.ListedBy{Name: "Dhanmondi Urban Rentals", Email: "leasing@dhanmondirentals.com", Phone: "+8801888223344"},
			CreatedAt:     daysAgo(11),
			UpdatedAt:     daysAgo(11),
		},
	}

	// The owner identity mirrors the listing contact.
	for i := range listings {
		listings[i].UserEmail = listings[i].ListedBy.Email
	}
	return listings
}
