package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/manifest"

	"go.uber.org/zap"
)

func main() {
	root := flag.String("root", ".", "directory holding the English and Korean audio trees")
	binName := flag.String("bin", "", "bin to build: Alphabet, Words or Phrases (empty builds all)")
	englishDir := flag.String("english", "", "English audio directory relative to root (default English/<bin>)")
	koreanDir := flag.String("korean", "", "Korean audio directory relative to root (default Korean/<bin>)")
	outDir := flag.String("out", ".", "directory to write <bin>_config.json into")
	verbose := flag.Bool("v", false, "log unmatched files")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	bins := domain.Bins
	if *binName != "" {
		bin, err := domain.ParseBin(*binName)
		if err != nil {
			logger.Fatal("Invalid bin", zap.Error(err))
		}
		bins = []domain.Bin{bin}
	} else if *englishDir != "" || *koreanDir != "" {
		logger.Fatal("-english and -korean need -bin")
	}

	builder := manifest.NewBuilder(os.DirFS(*root), logger)
	for _, bin := range bins {
		cat, err := builder.Build(manifest.Options{
			Bin:        bin,
			EnglishDir: *englishDir,
			KoreanDir:  *koreanDir,
		})
		if err != nil {
			logger.Error("Failed to build manifest", zap.String("bin", string(bin)), zap.Error(err))
			continue
		}

		out := filepath.Join(*outDir, bin.ManifestFile())
		if err := writeFile(out, cat); err != nil {
			logger.Fatal("Failed to write manifest", zap.String("path", out), zap.Error(err))
		}
		logger.Info("Manifest written",
			zap.String("path", out),
			zap.Int("categories", len(cat.Categories)),
			zap.Int("records", cat.Size()),
		)
	}
}

func writeFile(path string, cat *domain.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := manifest.Write(f, cat); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
