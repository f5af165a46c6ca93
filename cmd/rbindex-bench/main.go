// Command rbindex-bench drives a 32-bit-width rbindex.Tree through
// insert/delete/lookup workloads and reports throughput, along with which
// conditional-delete tier a given match rate selects. It is a standalone
// harness, not part of the library.
package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/ixtree/rbindex"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut *os.File) int {
	flagSet := flag.NewFlagSet("rbindex-bench", flag.ContinueOnError)

	n := flagSet.IntP("count", "n", 100_000, "number of keys to insert")
	deleteRate := flagSet.Float64P("delete-rate", "d", 0.1, "fraction of keys removed via ConditionalDelete after load (0-1)")
	capacity := flagSet.UintP("capacity", "c", 0, "initial backing capacity (0 = library default)")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if *deleteRate < 0 || *deleteRate > 1 {
		fmt.Fprintln(errOut, "delete-rate must be within [0, 1]")
		return 2
	}

	var opts []rbindex.Option[uint32, int64]
	if *capacity > 0 {
		opts = append(opts, rbindex.WithCapacity[uint32, int64](uint32(*capacity)))
	}
	tr := rbindex.New[uint32, int64](opts...)

	insertStart := time.Now()
	for i := 0; i < *n; i++ {
		k := int64(i)
		if err := tr.Insert(rbindex.FromInt64(k), k); err != nil {
			fmt.Fprintf(errOut, "insert failed at i=%d: %v\n", i, err)
			return 1
		}
	}
	insertElapsed := time.Since(insertStart)

	lookupStart := time.Now()
	hits := 0
	for i := 0; i < *n; i++ {
		if _, ok := tr.Search(rbindex.FromInt64(int64(i))); ok {
			hits++
		}
	}
	lookupElapsed := time.Since(lookupStart)

	threshold := int64(float64(*n) * (1 - *deleteRate))
	deleteStart := time.Now()
	deleted, err := tr.ConditionalDelete(func(k rbindex.Key, v int64) (bool, error) {
		return v >= threshold, nil
	})
	deleteElapsed := time.Since(deleteStart)
	if err != nil {
		fmt.Fprintf(errOut, "conditional delete failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "inserted=%d in %s (%.0f ops/s)\n", *n, insertElapsed, float64(*n)/insertElapsed.Seconds())
	fmt.Fprintf(out, "lookups=%d hits=%d in %s (%.0f ops/s)\n", *n, hits, lookupElapsed, float64(*n)/lookupElapsed.Seconds())
	fmt.Fprintf(out, "conditional_delete matched=%d rate=%.3f in %s (tier=%s)\n",
		deleted, *deleteRate, deleteElapsed, tierFor(*deleteRate))
	fmt.Fprintf(out, "final_size=%d\n", tr.Size())
	return 0
}

func tierFor(rate float64) string {
	switch {
	case rate < 0.25:
		return "sparse"
	case rate < 0.5:
		return "medium"
	default:
		return "heavy"
	}
}
