package registry

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// Options configure a validation run.
type Options struct {
	Root    string   // registry root containing developers/
	Scope   []string // optional namespace subset; empty means all
	Workers int      // worker count; <= 0 means GOMAXPROCS
}

// Run validates developers concurrently. Each developer's documents are
// independent, so parsing, schema validation, and referential checks run on a
// worker pool; results are sorted by namespace before returning so worker
// completion order never affects downstream output.
func Run(opts Options) ([]DeveloperResult, error) {
	namespaces, err := ListDevelopers(opts.Root)
	if err != nil {
		return nil, err
	}

	if len(opts.Scope) > 0 {
		namespaces, err = filterScope(namespaces, opts.Scope)
		if err != nil {
			return nil, err
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(namespaces) {
		workers = len(namespaces)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make([]DeveloperResult, 0, len(namespaces))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for namespace := range jobs {
				result := ValidateDeveloper(opts.Root, namespace)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, namespace := range namespaces {
		jobs <- namespace
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Namespace < results[j].Namespace
	})
	return results, nil
}

// ValidateDeveloper runs the full per-developer pipeline: file hygiene,
// parsing, schema validation, and referential checks.
func ValidateDeveloper(root, namespace string) DeveloperResult {
	set, violations := LoadDeveloper(root, namespace)
	violations = append(violations, CheckReferences(set)...)
	return DeveloperResult{
		Namespace:  namespace,
		Set:        set,
		Violations: violations,
	}
}

// filterScope restricts namespaces to the requested subset, rejecting scope
// entries that do not exist in the tree.
func filterScope(namespaces, scope []string) ([]string, error) {
	known := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		known[ns] = true
	}

	var filtered []string
	for _, ns := range scope {
		if !known[ns] {
			return nil, fmt.Errorf("unknown developer namespace %q", ns)
		}
		filtered = append(filtered, ns)
	}
	sort.Strings(filtered)
	return filtered, nil
}
