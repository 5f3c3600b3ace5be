package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Index maps execution identifiers to the log file that carries them.
// It is built once per data root and shared read-only across many
// session reconstructions.
type Index map[string]string

// DefaultSkipDirs are top-level directory names that never hold
// execution logs.
var DefaultSkipDirs = []string{".git", ".tmp", ".backups", "node_modules"}

// defaultBucketPattern matches the storage convention for bucket
// directories: 32 lowercase hex characters.
const defaultBucketPattern = `^[0-9a-f]{32}$`

// IndexOptions configures BuildIndex. The zero value uses the defaults.
type IndexOptions struct {
	// SkipDirs lists top-level directory names to ignore.
	SkipDirs []string
	// BucketPattern overrides the bucket-name regexp.
	BucketPattern string
	// Logger receives per-file debug detail. Nil means silent.
	Logger *zap.Logger
}

func (o IndexOptions) skipSet() map[string]bool {
	dirs := o.SkipDirs
	if dirs == nil {
		dirs = DefaultSkipDirs
	}
	set := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return set
}

func (o IndexOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// BuildIndex walks the execution-log tree under root and maps each
// log's executionId to its path. Indexing is best-effort: unreadable or
// malformed files are skipped silently. The only hard failure is a
// missing or non-directory root, since nothing downstream can be
// attempted without one.
func BuildIndex(root string, opts IndexOptions) (Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("execution-log root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("execution-log root %s is not a directory", root)
	}

	pattern := opts.BucketPattern
	if pattern == "" {
		pattern = defaultBucketPattern
	}
	bucketRe, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bucket pattern: %w", err)
	}

	skip := opts.skipSet()
	log := opts.logger()
	idx := make(Index)

	buckets, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read execution-log root: %w", err)
	}
	for _, bucket := range buckets {
		if !bucket.IsDir() || skip[bucket.Name()] || !bucketRe.MatchString(bucket.Name()) {
			continue
		}
		bucketPath := filepath.Join(root, bucket.Name())
		subs, err := os.ReadDir(bucketPath)
		if err != nil {
			continue
		}
		// descend exactly one level; deeper nesting is not part of
		// the storage convention
		for _, sub := range subs {
			if !sub.IsDir() {
				continue
			}
			indexLogDir(filepath.Join(bucketPath, sub.Name()), idx, log)
		}
	}

	log.Debug("execution-log index built", zap.Int("entries", len(idx)), zap.String("root", root))
	return idx, nil
}

// indexLogDir records every extension-less JSON file in dir that carries
// an executionId.
func indexLogDir(dir string, idx Index, log *zap.Logger) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, f := range files {
		if f.IsDir() || hasExtension(f.Name()) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !gjson.ValidBytes(data) {
			log.Debug("skipping non-JSON log candidate", zap.String("path", path))
			continue
		}
		id := gjson.GetBytes(data, "executionId").String()
		if id == "" {
			continue
		}
		idx[id] = path
	}
}

// hasExtension reports whether name carries a file extension. Logs are
// stored without one.
func hasExtension(name string) bool {
	return strings.Contains(name, ".")
}
