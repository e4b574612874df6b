// cmd/tools/domain-lint/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"marketplace-scoring/pkg/registry"
)

func main() {
	path := flag.String("path", "configs/domains.json", "Path to the domain registry file")
	flag.Parse()

	reg, err := registry.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registry %s is valid (version %d, %d domains)\n", *path, reg.Version, len(reg.Domains))
	for _, name := range reg.Names() {
		domain, _ := reg.Find(name)
		fmt.Printf("\n  %s (%s)\n", domain.Name, domain.Kind)

		factors := append([]string(nil), domain.Factors...)
		sort.Strings(factors)
		for _, factor := range factors {
			marker := " "
			for _, n := range domain.NeutralFactors {
				if n == factor {
					marker = "n"
				}
			}
			fmt.Printf("    %s %-22s %.2f\n", marker, factor, domain.Weights[factor])
		}
		if domain.SecondaryKey != "" {
			fmt.Printf("    tie-break: %s\n", domain.SecondaryKey)
		}
		if domain.MinScore > 0 {
			fmt.Printf("    min score: %.2f, max results: %d\n", domain.MinScore, domain.MaxResults)
		}
	}
}
