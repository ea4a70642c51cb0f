// Command knn runs a k-nearest-neighbors query against five fixed 2D points,
// prints the query and its neighbors, and writes a chart of the result to
// knn.png in the working directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/viant/knn/chart"
	"github.com/viant/knn/knn"
	"github.com/viant/knn/vector"
)

const chartURL = "knn.png"

var (
	points = vector.Points{
		{1, 2},
		{2, 3},
		{3, 4},
		{5, 5},
		{8, 8},
	}
	query = vector.Point{3.5, 3.5}
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(context.Background(), os.Stdout, chartURL, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("knn demo failed")
	}
}

func run(ctx context.Context, stdout io.Writer, URL string, logger zerolog.Logger) error {
	nn := knn.New(
		knn.WithNeighbors(2),
		knn.WithMetric(vector.Euclidean),
		knn.WithLogger(logger),
	)
	defer nn.Close()
	if err := nn.Fit(points); err != nil {
		return err
	}
	result, err := nn.KNeighbors(query)
	if err != nil {
		return err
	}
	neighbors := result.Neighbors(points)
	if err := report(stdout, query, neighbors, result.Distances); err != nil {
		return err
	}

	cfg := chart.DefaultConfig()
	p, err := chart.Render(points, query, neighbors, cfg)
	if err != nil {
		return err
	}
	if err := chart.Save(ctx, p, URL, cfg); err != nil {
		return err
	}
	logger.Info().Str("chart", URL).Msg("chart written")
	return nil
}

// report prints the query line and the neighbors line.
func report(w io.Writer, query vector.Point, neighbors vector.Points, distances []float64) error {
	parts := make([]string, len(neighbors))
	for i, n := range neighbors {
		parts[i] = fmt.Sprintf("%v (distance %.4f)", n, distances[i])
	}
	_, err := fmt.Fprintf(w, "Query point: %v\nNearest neighbors: %s\n", query, strings.Join(parts, ", "))
	return err
}
