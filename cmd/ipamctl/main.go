// ipamctl works directly on a site IPAM inventory file.
//
// Usage:
//
//	ipamctl plan --vlan 50 --site HQ [--log]   Lay out a VLAN address plan
//	ipamctl sites                              List sites in file order
//	ipamctl devices [--site s] [--vlan n]      List devices
//	ipamctl device <name> [--site s]           Show one device
//	ipamctl free-ips <site> <vlan>             List unassigned addresses
//	ipamctl stats [--site s]                   Summarize devices
//	ipamctl add <site> --name ... --ip ...     Add a device
//	ipamctl update <site> <name> [flags]       Change a device
//	ipamctl delete <site> <name>               Remove a device
//	ipamctl export [--site s] [--dir d]        Write a CSV export
//	ipamctl check                              Report inventory problems
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
