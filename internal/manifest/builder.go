// Package manifest builds bin catalogs by scanning audio directories
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"

	"koreanvocab/internal/domain"

	"go.uber.org/zap"
)

// PrefixWidth is the length of the index prefix shared by matching files
const PrefixWidth = 3

const nameSuffix = "_name.mp3"

// Options selects what to scan
type Options struct {
	Bin        domain.Bin
	EnglishDir string // defaults to English/<bin>
	KoreanDir  string // defaults to Korean/<bin>
}

func (o Options) withDefaults() Options {
	if o.EnglishDir == "" {
		o.EnglishDir = path.Join("English", string(o.Bin))
	}
	if o.KoreanDir == "" {
		o.KoreanDir = path.Join("Korean", string(o.Bin))
	}
	return o
}

// Builder scans a file tree for paired English/Korean audio files
type Builder struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewBuilder creates a builder over fsys
func NewBuilder(fsys fs.FS, logger *zap.Logger) *Builder {
	return &Builder{fsys: fsys, logger: logger}
}

// Build scans the directories for opts.Bin. Alphabet uses english_<x> and
// korean_<x> category directories with optional name audio, the other bins
// share category names across both languages.
func (b *Builder) Build(opts Options) (*domain.Catalog, error) {
	opts = opts.withDefaults()
	if opts.Bin == domain.BinAlphabet {
		return b.buildAlphabet(opts)
	}
	return b.buildFlat(opts)
}

func (b *Builder) buildFlat(opts Options) (*domain.Catalog, error) {
	categories, err := b.subdirs(opts.EnglishDir)
	if err != nil {
		return nil, fmt.Errorf("list categories in %s: %w", opts.EnglishDir, err)
	}

	cat := newCatalog(opts.Bin, categories)
	for _, category := range categories {
		enDir := path.Join(opts.EnglishDir, category)
		koDir := path.Join(opts.KoreanDir, category)

		koFiles, err := b.audioFiles(koDir)
		if err != nil {
			b.logger.Warn("Korean category directory missing, skipping",
				zap.String("dir", koDir),
				zap.Error(err),
			)
			continue
		}
		enFiles, err := b.audioFiles(enDir)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", enDir, err)
		}

		cat.Words[category] = b.pair(enDir, koDir, byPrefix(enFiles), byPrefix(koFiles), nil, nil)
		b.logger.Info("Category scanned",
			zap.String("category", category),
			zap.Int("records", len(cat.Words[category])),
		)
	}
	return cat, nil
}

func (b *Builder) buildAlphabet(opts Options) (*domain.Catalog, error) {
	enDirs, err := b.subdirs(opts.EnglishDir)
	if err != nil {
		return nil, fmt.Errorf("list categories in %s: %w", opts.EnglishDir, err)
	}
	koDirs, err := b.subdirs(opts.KoreanDir)
	if err != nil {
		return nil, fmt.Errorf("list categories in %s: %w", opts.KoreanDir, err)
	}

	var categories []string
	seen := map[string]bool{}
	for _, d := range append(enDirs, koDirs...) {
		base := strings.TrimPrefix(strings.TrimPrefix(d, "english_"), "korean_")
		if !seen[base] {
			seen[base] = true
			categories = append(categories, base)
		}
	}

	cat := newCatalog(opts.Bin, categories)
	for _, category := range categories {
		enDir := path.Join(opts.EnglishDir, "english_"+category)
		koDir := path.Join(opts.KoreanDir, "korean_"+category)

		// either side may be missing, which leaves the category empty
		enFiles, _ := b.audioFiles(enDir)
		koFiles, _ := b.audioFiles(koDir)

		enSounds, enNames := splitNames(enFiles)
		koSounds, koNames := splitNames(koFiles)

		cat.Words[category] = b.pair(enDir, koDir, byPrefix(enSounds), byPrefix(koSounds), byPrefix(enNames), byPrefix(koNames))
		b.logger.Info("Category scanned",
			zap.String("category", category),
			zap.Int("records", len(cat.Words[category])),
		)
	}
	return cat, nil
}

// pair joins English and Korean files sharing an index prefix. Files with no
// counterpart are dropped.
func (b *Builder) pair(enDir, koDir string, en, ko, enNames, koNames map[string]string) []domain.WordRecord {
	indexes := make([]string, 0, len(en))
	for idx := range en {
		indexes = append(indexes, idx)
	}
	sort.Strings(indexes)

	records := []domain.WordRecord{}
	for _, idx := range indexes {
		koFile, ok := ko[idx]
		if !ok {
			b.logger.Debug("No Korean match for file", zap.String("file", path.Join(enDir, en[idx])))
			continue
		}
		rec := domain.WordRecord{
			Index:   idx,
			English: ExtractWord(en[idx]),
			Korean:  ExtractWord(koFile),
			AudioEn: path.Join(enDir, en[idx]),
			AudioKo: path.Join(koDir, koFile),
		}
		if name, ok := enNames[idx]; ok {
			rec.AudioEnName = path.Join(enDir, name)
		}
		if name, ok := koNames[idx]; ok {
			rec.AudioKoName = path.Join(koDir, name)
		}
		records = append(records, rec)
	}
	for idx, f := range ko {
		if _, ok := en[idx]; !ok {
			b.logger.Debug("No English match for file", zap.String("file", path.Join(koDir, f)))
		}
	}
	return records
}

func (b *Builder) subdirs(dir string) ([]string, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (b *Builder) audioFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".mp3") {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func newCatalog(bin domain.Bin, categories []string) *domain.Catalog {
	cat := &domain.Catalog{
		Bin:        bin,
		Categories: categories,
		Words:      make(map[string][]domain.WordRecord, len(categories)),
	}
	if cat.Categories == nil {
		cat.Categories = []string{}
	}
	for _, c := range categories {
		cat.Words[c] = []domain.WordRecord{}
	}
	return cat
}

func splitNames(files []string) (sounds, names []string) {
	for _, f := range files {
		if strings.HasSuffix(f, nameSuffix) {
			names = append(names, f)
		} else {
			sounds = append(sounds, f)
		}
	}
	return sounds, names
}

// byPrefix keys files by their numeric index prefix. A later file with the
// same prefix replaces an earlier one; files without one are skipped.
func byPrefix(files []string) map[string]string {
	m := make(map[string]string, len(files))
	for _, f := range files {
		if !hasIndexPrefix(f) {
			continue
		}
		m[f[:PrefixWidth]] = f
	}
	return m
}

func hasIndexPrefix(name string) bool {
	if len(name) <= PrefixWidth {
		return false
	}
	for _, r := range name[:PrefixWidth] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ExtractWord turns "000_Good_morning.mp3" into "Good morning"
func ExtractWord(filename string) string {
	name := strings.TrimSuffix(filename, path.Ext(filename))
	if len(name) > PrefixWidth+1 && name[PrefixWidth] == '_' {
		name = name[PrefixWidth+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Write encodes cat as indented JSON without HTML escaping
func Write(w io.Writer, cat *domain.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(cat)
}
