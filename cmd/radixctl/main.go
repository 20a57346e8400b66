// Command radixctl drives the radix memory pool with synthetic workloads and
// reports its statistics.
package main

import (
	_ "go.uber.org/automaxprocs"
)

func main() {
	execute()
}
