package cmd

import (
	"codescan/internal/config"
	"codescan/internal/embeddings"
	"codescan/internal/indexer"
	"codescan/internal/models"
	"codescan/internal/qdrant"
	"codescan/internal/scanner"
	"codescan/internal/solidity"
	"codescan/internal/utils"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info, set from main via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "codescan",
	Short: "Multi-language function extraction for code indexing",
	Long:  "A CLI tool that extracts function-level metadata from source files and feeds it into a vector index for semantic search",
}

var scanCmd = &cobra.Command{
	Use:   "scan <file> [file...]",
	Short: "Extract function records from source files and print them as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tolerant, _ := cmd.Flags().GetBool("tolerant")
		dispatcher := scanner.NewDispatcher(scanner.NewSolidityParser(solidity.Options{
			Tolerant: tolerant,
		}))

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ Failed to read %s: %v\n", path, err)
				continue
			}

			res, err := dispatcher.Scan(path, utils.DecodeLenient(data))
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ Failed to scan %s: %v\n", path, err)
				continue
			}

			var out []byte
			if res.AST != nil {
				out, err = json.MarshalIndent(res.AST, "", "  ")
			} else {
				out, err = json.MarshalIndent(res.Functions, "", "  ")
			}
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
		return nil
	},
}

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Parse a Solidity file and optionally dump its syntax tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tolerant, _ := cmd.Flags().GetBool("tolerant")
		tokens, _ := cmd.Flags().GetBool("tokens")
		dump, _ := cmd.Flags().GetBool("dump")
		out, _ := cmd.Flags().GetString("out")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		unit, err := solidity.Parse(utils.DecodeLenient(data), solidity.Options{
			Tolerant: tolerant,
			Tokens:   tokens,
			DumpJSON: dump,
			DumpPath: out,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Parsed %s (%d top-level nodes", args[0], len(unit.Children))
		if len(unit.Errors) > 0 {
			fmt.Printf(", %d syntax errors", len(unit.Errors))
		}
		fmt.Println(")")
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index a project's function records to the vector database",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load shared config (~/.codescan/config.json) so OPENAI_*/QDRANT_*
		// from that file are visible as env vars when running via CLI.
		if err := config.LoadFromUserConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}

		dir, _ := cmd.Flags().GetString("dir")

		qc, err := qdrant.NewClient()
		if err != nil {
			return err
		}
		defer qc.Close()

		ec := embeddings.NewClient()
		// Solidity parse errors attach to the tree instead of failing files
		// mid-index.
		dispatcher := scanner.NewDispatcher(scanner.NewSolidityParser(solidity.Options{
			Tolerant: true,
		}))
		idx := indexer.NewIndexer(qc, ec, dispatcher)

		fmt.Printf("Indexing project at: %s\n", dir)
		return idx.IndexProject(dir)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a semantic search over indexed function records",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadFromUserConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}

		q, _ := cmd.Flags().GetString("q")
		topK, _ := cmd.Flags().GetInt("top_k")
		dir, _ := cmd.Flags().GetString("dir")
		if topK <= 0 {
			topK = 10
		}

		projectID, err := utils.ComputeProjectID(dir)
		if err != nil {
			return fmt.Errorf("failed to compute project id: %w", err)
		}
		collection := indexer.CollectionName(projectID)

		qc, err := qdrant.NewClient()
		if err != nil {
			return err
		}
		defer qc.Close()

		ec := embeddings.NewClient()
		vector, err := ec.Embed(q)
		if err != nil {
			return err
		}

		hits, err := qc.Search(collection, vector, uint64(topK))
		if err != nil {
			return err
		}

		results := make([]models.SearchResult, 0, len(hits))
		for _, hit := range hits {
			payload := qdrant.PayloadToMap(hit.GetPayload())
			raw, merr := json.Marshal(payload)
			if merr != nil {
				continue
			}
			var p models.FunctionChunkPayload
			if uerr := json.Unmarshal(raw, &p); uerr != nil {
				continue
			}
			results = append(results, models.SearchResult{
				Score:   float64(hit.GetScore()),
				Payload: p,
			})
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(data))
		return nil
	},
}

var clearIndexCmd = &cobra.Command{
	Use:   "clear-index",
	Short: "Delete the Qdrant collection and local state for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadFromUserConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}

		dir, _ := cmd.Flags().GetString("dir")
		projectID, err := utils.ComputeProjectID(dir)
		if err != nil {
			return fmt.Errorf("failed to compute project id: %w", err)
		}
		collection := indexer.CollectionName(projectID)

		qc, err := qdrant.NewClient()
		if err != nil {
			return err
		}
		defer qc.Close()

		fmt.Printf("Deleting collection: %s\n", collection)
		if err := qc.DeleteCollection(collection); err != nil {
			return err
		}
		if err := indexer.ClearProjectState(projectID); err != nil {
			fmt.Fprintf(os.Stderr, "✗ Failed to clear local state: %v\n", err)
		}
		fmt.Println("✓ Collection deleted")
		return nil
	},
}

func init() {
	scanCmd.Flags().Bool("tolerant", false, "Attach Solidity syntax errors to the tree instead of failing")
	astCmd.Flags().Bool("tolerant", false, "Attach syntax errors to the tree instead of failing")
	astCmd.Flags().Bool("tokens", false, "Include the token list in the tree")
	astCmd.Flags().Bool("dump", false, "Write the tree to <out>/ast.json with camelCase keys")
	astCmd.Flags().String("out", "./out", "Output directory for --dump")
	indexCmd.Flags().String("dir", ".", "Project root directory")
	searchCmd.Flags().String("q", "", "Search query")
	searchCmd.Flags().Int("top_k", 10, "Maximum number of results to return")
	searchCmd.Flags().String("dir", ".", "Project root directory (must match the directory passed to 'codescan index')")
	clearIndexCmd.Flags().String("dir", ".", "Project root directory to clear from Qdrant")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(clearIndexCmd)
}

func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
	return rootCmd.Execute()
}
