package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var equipmentData = []struct {
	Name     string
	Category string
}{
	{"Canon EOS R6", "camera"},
	{"Sony A7 IV", "camera"},
	{"DJI Mavic 3", "drone"},
	{"Manfrotto 055 Tripod", "tripod"},
	{"Rode VideoMic Pro", "audio"},
	{"Zoom H6 Recorder", "audio"},
	{"Godox SL-60W Light", "lighting"},
	{"MacBook Pro 16", "laptop"},
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - creating equipment...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(id) FROM equipments").Scan(&count); err != nil {
		return fmt.Errorf("failed to count equipment: %w", err)
	}
	if count > 0 {
		log.Println("    - equipment table is not empty, skipping")
		return nil
	}

	for _, item := range equipmentData {
		_, err := db.Exec(ctx,
			"INSERT INTO equipments (name, category) VALUES ($1, $2)",
			item.Name, item.Category)
		if err != nil {
			return fmt.Errorf("failed to insert equipment %q: %w", item.Name, err)
		}
	}
	log.Printf("    - %d equipment items created\n", len(equipmentData))
	return nil
}
