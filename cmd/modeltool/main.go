package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/model"
)

// modeltool inspects a delay model artifact and runs a smoke prediction,
// useful when validating a freshly exported artifact before deploying it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	path := os.Getenv("MODEL_PATH")
	if path == "" {
		path = "models/traffic_model.json"
	}
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	artifact, err := model.LoadArtifact(path)
	if err != nil {
		log.Fatalf("load artifact %q: %v", path, err)
	}

	fmt.Printf("artifact: %s\n", path)
	fmt.Printf("trees: %d\n", len(artifact.Trees))
	fmt.Printf("base prediction: %.4f\n", artifact.BasePrediction)
	fmt.Println("features:")
	for _, name := range artifact.FeatureNames {
		fmt.Printf("  %s\n", name)
	}

	// Smoke prediction: a 10 km weekday morning trip in clear weather.
	row := domain.FeatureVector{
		DistanceKM:      10,
		BaseDurationMin: 20,
		HourSin:         0.5,
		HourCos:         -0.866025,
		IsWeekend:       0,
		WeatherSeverity: 1,
		Density:         50,
		Lanes:           3,
		Signals:         5,
	}

	handle := model.NewHandle(path)
	delays, err := handle.Predict(context.Background(), domain.FeatureNames, [][]float64{row.Vector()})
	if err != nil {
		log.Fatalf("smoke prediction: %v", err)
	}

	fmt.Printf("smoke prediction: %.2f min delay\n", delays[0])
}
