// cmd/wmsctl/main.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/andresuchdata/autowms/internal/abc"
	"github.com/andresuchdata/autowms/internal/allocation"
	"github.com/andresuchdata/autowms/internal/config"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/export"
	"github.com/andresuchdata/autowms/internal/ledger"
	"github.com/andresuchdata/autowms/internal/replenish"
	"github.com/andresuchdata/autowms/internal/seed"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newSeedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "bins",
			Usage:   "Bin seed CSV",
			Value:   "./data/seeds/bins.csv",
			EnvVars: []string{"SEED_BINS_CSV"},
		},
		&cli.StringFlag{
			Name:    "demand",
			Usage:   "Demand profile seed CSV",
			Value:   "./data/seeds/demand.csv",
			EnvVars: []string{"SEED_DEMAND_CSV"},
		},
		&cli.StringFlag{
			Name:    "catalog",
			Usage:   "SKU catalog seed CSV",
			Value:   "./data/seeds/catalog.csv",
			EnvVars: []string{"SEED_CATALOG_CSV"},
		},
	}
}

// world is the fully-assembled offline engine built from seed files.
type world struct {
	ledger     *ledger.Ledger
	engine     *allocation.Engine
	profiles   *replenish.ProfileStore
	calculator *replenish.Calculator
	thresholds abc.Thresholds
	catalog    *domain.Catalog
}

func buildWorld(c *cli.Context) (*world, error) {
	cfg := config.Load()

	bins, err := seed.LoadBinsFile(c.String("bins"))
	if err != nil {
		return nil, err
	}
	binLedger := ledger.New()
	if err := binLedger.Seed(bins); err != nil {
		return nil, err
	}

	profilesData, err := seed.LoadDemandProfilesFile(c.String("demand"))
	if err != nil {
		return nil, err
	}
	profiles := replenish.NewProfileStore()
	profiles.Load(profilesData)

	catalogData, err := seed.LoadCatalogFile(c.String("catalog"))
	if err != nil {
		return nil, err
	}

	return &world{
		ledger: binLedger,
		engine: allocation.NewEngine(binLedger, cfg.Policy.DefaultBinCapacity),
		calculator: replenish.NewCalculator(domain.CostPolicy{
			OrderingCost:       cfg.Policy.OrderingCost,
			HoldingCostPerUnit: cfg.Policy.HoldingCostPerUnit,
		}, cfg.Policy.ServiceLevelZ),
		thresholds: abc.Thresholds{ClassA: cfg.Policy.ABCClassAThreshold, ClassB: cfg.Policy.ABCClassBThreshold},
		profiles:   profiles,
		catalog:    domain.NewCatalog(catalogData),
	}, nil
}

func runScan(c *cli.Context) error {
	w, err := buildWorld(c)
	if err != nil {
		return err
	}

	commands := c.Args().Slice()
	if file := c.String("file"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open scan file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			commands = append(commands, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read scan file: %w", err)
		}
	}

	if len(commands) == 0 {
		return fmt.Errorf("no scan commands given (pass commands as args or --file)")
	}

	for _, command := range commands {
		result, err := w.engine.Apply(command)
		if err != nil {
			fmt.Printf("%-24s ERROR %v\n", command, err)
			continue
		}
		fmt.Printf("%-24s requested=%d fulfilled=%d shortfall=%d\n",
			command, result.Requested, result.Fulfilled, result.Shortfall)
	}

	if out := c.String("export-bins"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		return export.WriteBinCSV(f, w.ledger.List(domain.BinFilter{}), w.catalog)
	}
	return nil
}

func runRecommend(c *cli.Context) error {
	w, err := buildWorld(c)
	if err != nil {
		return err
	}

	skus := w.profiles.SKUs()
	if raw := c.String("skus"); raw != "" {
		skus = strings.Split(raw, ",")
	}

	for _, sku := range skus {
		sku = strings.TrimSpace(sku)
		profile, ok := w.profiles.Get(sku)
		if !ok {
			fmt.Printf("%-16s no demand profile\n", sku)
			continue
		}

		rec, err := w.calculator.Compute(sku, profile, w.ledger.OnHand(sku))
		if err != nil {
			fmt.Printf("%-16s skipped: %v\n", sku, err)
			continue
		}
		fmt.Printf("%-16s on_hand=%-6d safety=%-6d rop=%-6d eoq=%-6d order=%d\n",
			rec.SKU, rec.OnHand, rec.SafetyStock, rec.ReorderPoint, rec.EOQ, rec.RecommendedQty)
	}
	return nil
}

func runABC(c *cli.Context) error {
	w, err := buildWorld(c)
	if err != nil {
		return err
	}

	items := make([]abc.Item, 0)
	for _, sku := range w.profiles.SKUs() {
		profile, _ := w.profiles.Get(sku)
		items = append(items, abc.Item{
			SKU:         sku,
			AnnualValue: replenish.AnnualValue(profile, w.catalog.Lookup(sku)),
		})
	}

	for _, bucket := range abc.Classify(items, w.thresholds) {
		fmt.Printf("%-16s class=%s annual_value=%s cumulative=%.1f%%\n",
			bucket.SKU, bucket.Class, bucket.AnnualValue.StringFixed(2), bucket.CumulativePct)
	}
	return nil
}

func runExportBins(c *cli.Context) error {
	w, err := buildWorld(c)
	if err != nil {
		return err
	}

	filter := domain.BinFilter{
		Zone: c.String("zone"),
		SKU:  c.String("sku"),
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return export.WriteBinCSV(out, w.ledger.List(filter), w.catalog)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "wmsctl",
		Usage: "Offline warehouse engine: apply scans and inspect replenishment output",
		Flags: newSeedFlags(),
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Apply scan commands against the seeded ledger",
				Flags: append(newSeedFlags(),
					&cli.StringFlag{
						Name:  "file",
						Usage: "File with one scan command per line",
					},
					&cli.StringFlag{
						Name:  "export-bins",
						Usage: "Write the resulting bin listing CSV to this path",
					},
				),
				Action: runScan,
			},
			{
				Name:  "recommend",
				Usage: "Print replenishment recommendations",
				Flags: append(newSeedFlags(),
					&cli.StringFlag{
						Name:  "skus",
						Usage: "Comma-separated SKU list (default: all profiled SKUs)",
					},
				),
				Action: runRecommend,
			},
			{
				Name:   "abc",
				Usage:  "Print the ABC value classification",
				Flags:  newSeedFlags(),
				Action: runABC,
			},
			{
				Name:  "export-bins",
				Usage: "Write the bin listing CSV",
				Flags: append(newSeedFlags(),
					&cli.StringFlag{Name: "out", Usage: "Output path (default: stdout)"},
					&cli.StringFlag{Name: "zone", Usage: "Filter by zone"},
					&cli.StringFlag{Name: "sku", Usage: "Filter by SKU"},
				),
				Action: runExportBins,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
