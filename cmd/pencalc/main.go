package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsatools/pencalc/internal/api"
	"github.com/rsatools/pencalc/internal/calculation"
	"github.com/rsatools/pencalc/internal/config"
	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/internal/output"
	"github.com/rsatools/pencalc/internal/tables"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pencalc",
	Short: "RSA pension benefit calculator",
	Long:  "Computes retiree benefit packages (lump-sum, monthly pension, arrears, annuity premium) from actuarial annuity-factor tables",
}

// loadEngine builds the engine from the tables directory and optional
// regulatory overrides. Missing or corrupt tables are fatal: no client can
// be processed without a complete table set.
func loadEngine(cmd *cobra.Command) *calculation.Engine {
	tablesDir, _ := cmd.Flags().GetString("tables")
	annuity, scale, err := tables.LoadDir(tablesDir)
	if err != nil {
		log.Fatalf("loading lookup tables from %s: %v", tablesDir, err)
	}

	policy := domain.DefaultRegulatoryPolicy()
	if regulatoryFile, _ := cmd.Flags().GetString("regulatory-config"); regulatoryFile != "" {
		policy, err = config.NewInputParser().LoadPolicyFile(regulatoryFile)
		if err != nil {
			log.Fatalf("loading regulatory config from %s: %v", regulatoryFile, err)
		}
	}

	return calculation.NewEngine(policy, annuity, scale)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [client-file]",
	Short: "Calculate one client's benefit package from a YAML record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := loadEngine(cmd)

		record, err := config.NewInputParser().LoadClientFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		result := engine.Calculate(record)
		fmt.Print(output.FormatReport(&result))
		if result.Status == domain.StatusError {
			os.Exit(1)
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [input-csv]",
	Short: "Calculate benefit packages for every client in a CSV file",
	Long: "Reads one client per row and writes one result row per client.\n" +
		"Expected input columns: " + strings.Join(output.ClientColumns(), ", "),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := loadEngine(cmd)

		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		rows, err := output.ReadClientCSV(in)
		if err != nil {
			log.Fatalf("reading %s: %v", args[0], err)
		}

		results := make([]domain.PensionResult, 0, len(rows))
		for i := range rows {
			if rows[i].Failure != nil {
				results = append(results, *rows[i].Failure)
				continue
			}
			results = append(results, engine.Calculate(&rows[i].Record))
		}

		outputFile, _ := cmd.Flags().GetString("output")
		out, err := os.Create(outputFile)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()

		if err := output.WriteResultCSV(out, results); err != nil {
			log.Fatalf("writing %s: %v", outputFile, err)
		}

		succeeded := 0
		for i := range results {
			if results[i].Status == domain.StatusSuccess {
				succeeded++
			}
		}
		log.Printf("processed %d clients: %d succeeded, %d failed; results in %s",
			len(results), succeeded, len(results)-succeeded, outputFile)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation engine over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		engine := loadEngine(cmd)
		addr, _ := cmd.Flags().GetString("addr")

		router := api.NewRouter(api.NewHandler(engine))
		log.Printf("pencalc listening on %s", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Fatal(err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "pencalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	for _, cmd := range []*cobra.Command{calculateCmd, batchCmd, serveCmd} {
		cmd.Flags().String("tables", "tables", "Directory containing the annuity-factor and salary-scale CSV files")
		cmd.Flags().String("regulatory-config", "", "Optional YAML file overriding regulatory policy constants")
	}
	batchCmd.Flags().String("output", "pension_results.csv", "Output CSV file")
	serveCmd.Flags().String("addr", ":8080", "Listen address")

	rootCmd.AddCommand(calculateCmd, batchCmd, serveCmd, versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
