// Command pinksom-train is the CLI front end wiring config, input/output
// I/O and optional telemetry around the training driver (§6).
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"pinksom/internal/config"
	"pinksom/internal/geometry"
	"pinksom/internal/pinkio"
	"pinksom/internal/som"
	"pinksom/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "pinksom.json", "path to training configuration JSON")
	inputPath := flag.String("input", "", "path to binary input stream (overrides config input_path)")
	outputPath := flag.String("output", "", "path to write the composite SOM output (overrides config output_path)")
	envPath := flag.String("env", ".env", "path to a .env file holding telemetry credentials")
	maxWorkers := flag.Int("workers", 0, "max concurrent goroutines per fan-out stage (0 = use config max_workers; 0 there runs sequentially, negative is unbounded)")
	flag.Parse()

	if err := config.LoadEnv(*envPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfgFile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	in := cfgFile.InputPath
	if *inputPath != "" {
		in = *inputPath
	}
	out := cfgFile.OutputPath
	if *outputPath != "" {
		out = *outputPath
	}

	inFile, err := os.Open(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening input stream: %v\n", err)
		return 3
	}
	defer inFile.Close()

	reader, err := pinkio.NewReader(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 4
	}

	workers := *maxWorkers
	if workers == 0 {
		workers = cfgFile.MaxWorkers
	}

	store, err := openTelemetryStore()
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer store.Close()

	startTime := telemetry.Now()
	somCfg := cfgFile.ToSOMConfig()

	firstImg, ok, err := reader.Next()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 4
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "input stream contains no entries")
		return 4
	}

	driver, err := som.NewDriver(somCfg, firstImg.W, firstImg.H, workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	firstOnce := &onceSource{firstImg: firstImg, rest: reader}

	stepsTrained := 0
	var lastDist float32
	observer := func(step int, bmu int, bmuDistance float32, sigma, eta float64) {
		stepsTrained = step + 1
		lastDist = bmuDistance
	}

	trainErr := driver.Train(firstOnce, nil, observer)

	outFile, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating output file: %v\n", err)
		return 3
	}
	defer outFile.Close()

	if err := pinkio.WriteMap(outFile, driver.SOM); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}

	status := "FINISHED"
	if trainErr != nil {
		status = "FAILED"
	}
	token := telemetry.RunToken(startTime, somCfg.N, somCfg.Dx, somCfg.Dy, somCfg.Seed)
	if err := store.Insert(telemetry.RunSummary{
		Token:        token,
		N:            somCfg.N,
		Dx:           somCfg.Dx,
		Dy:           somCfg.Dy,
		Seed:         somCfg.Seed,
		Rotations:    somCfg.Rotations,
		Functor:      somCfg.Functor,
		StartTime:    startTime,
		EndTime:      telemetry.Now(),
		StepsTrained: stepsTrained,
		FinalBMUDist: lastDist,
		Status:       status,
	}); err != nil {
		log.Printf("telemetry insert failed: %v", err)
	}

	if trainErr != nil {
		fmt.Fprintln(os.Stderr, trainErr)
		return exitCodeFor(trainErr)
	}
	return 0
}

func exitCodeFor(err error) int {
	var cfgErr *som.ConfigurationError
	var inputErr *som.InputFormatError
	var ioErr *som.IOError
	var numErr *som.NumericError
	switch {
	case errors.As(err, &cfgErr):
		return 2
	case errors.As(err, &ioErr):
		return 3
	case errors.As(err, &inputErr):
		return 4
	case errors.As(err, &numErr):
		return 5
	default:
		return 1
	}
}

func openTelemetryStore() (*telemetry.Store, error) {
	user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")
	host, port, name := os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME")
	if user == "" || host == "" || name == "" {
		return nil, fmt.Errorf("no DB_USER/DB_HOST/DB_NAME set")
	}
	return telemetry.NewStore(user, pass, host, port, name, "pinksom_runs")
}

// onceSource adapts a pinkio.Reader that already yielded its first image
// (consumed to discover input dimensions before the driver can be built)
// back into a single InputSource that replays that image first.
type onceSource struct {
	firstImg geometry.Image
	replayed bool
	rest     *pinkio.Reader
}

func (o *onceSource) Next() (geometry.Image, bool, error) {
	if !o.replayed {
		o.replayed = true
		return o.firstImg, true, nil
	}
	return o.rest.Next()
}
