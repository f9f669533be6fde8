// Package main implements an interactive console for inspecting the data
// directory of a running or stopped Plateful instance: menu items, recent
// orders, and registered users.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/plateful/backend/internal/app/domain/menu"
	"github.com/plateful/backend/internal/app/domain/order"
	"github.com/plateful/backend/internal/app/domain/user"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/internal/app/storage/filestore"
)

const recentWindow = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	defaultDir := os.Getenv("DATA_DIR")
	if defaultDir == "" {
		defaultDir = ".data"
	}
	dataDir := flag.String("data", defaultDir, "path to the data directory")
	flag.Parse()

	store, err := filestore.New(*dataDir)
	if err != nil {
		log.Fatalf("failed to open data directory: %v", err)
	}

	c := &console{store: store, out: os.Stdout}
	c.run(os.Stdin)
}

type console struct {
	store storage.Store
	out   *os.File
}

func (c *console) run(in *os.File) {
	fmt.Fprintln(c.out, "Plateful inspector. Type 'help' for the command list.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		frags := strings.Fields(line)
		cmd := strings.ToLower(frags[0])
		arg := ""
		if len(frags) > 1 {
			arg = strings.TrimPrefix(frags[1], "--")
		}

		ctx := context.Background()
		switch cmd {
		case "help", "man":
			c.printHelp()
		case "menu":
			c.printMenu(ctx)
		case "orders":
			if arg == "" {
				c.printRecentOrders(ctx)
			} else {
				c.printOrder(ctx, arg)
			}
		case "users":
			if arg == "" {
				c.printUsers(ctx)
			} else {
				c.printUser(ctx, arg)
			}
		case "exit", "quit":
			fmt.Fprintln(c.out, "Application terminated")
			return
		default:
			fmt.Fprintln(c.out, "Command is not recognized.")
		}
	}
}

func (c *console) printHelp() {
	w := tabwriter.NewWriter(c.out, 0, 4, 4, ' ', 0)
	fmt.Fprintln(w, "exit\tKill the CLI")
	fmt.Fprintln(w, "man\tShow this help page")
	fmt.Fprintln(w, "help\tAlias of the \"man\" command")
	fmt.Fprintln(w, "menu\tShow available menu items")
	fmt.Fprintln(w, "orders\tPrint all orders placed in the past 24 hours")
	fmt.Fprintln(w, "orders --{orderid}\tPrint specific order details by order ID")
	fmt.Fprintln(w, "users\tShow all signed-up users")
	fmt.Fprintln(w, "users --{email}\tShow details of a specified user by email address")
	w.Flush()
}

func (c *console) printMenu(ctx context.Context) {
	var items []menu.Item
	found, err := c.store.Read(ctx, storage.Menu, storage.MenuKey, &items)
	if err != nil || !found {
		fmt.Fprintln(c.out, "no menu found")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 4, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\n", item.ID, item.Name, item.Price)
	}
	w.Flush()
}

func (c *console) printRecentOrders(ctx context.Context) {
	ids, err := c.store.List(ctx, storage.Orders)
	if err != nil {
		fmt.Fprintf(c.out, "failed to list orders: %v\n", err)
		return
	}

	cutoff := time.Now().Add(-recentWindow)
	shown := 0
	for _, id := range ids {
		var o order.Order
		found, err := c.store.Read(ctx, storage.Orders, id, &o)
		if err != nil || !found {
			continue
		}
		if o.TimeCreated.Before(cutoff) {
			continue
		}
		c.renderOrder(o)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(c.out, "no orders in the past 24 hours")
	}
}

func (c *console) printOrder(ctx context.Context, id string) {
	var o order.Order
	found, err := c.store.Read(ctx, storage.Orders, id, &o)
	if err != nil || !found {
		fmt.Fprintf(c.out, "order %q not found\n", id)
		return
	}
	c.renderOrder(o)
}

func (c *console) renderOrder(o order.Order) {
	fmt.Fprintf(c.out, "%s\t$%.2f\t%s\t%s\n", o.ID, float64(o.Total)/100, o.Status, o.TimeCreated.Format(time.RFC3339))
	fmt.Fprintln(c.out, "  Cart:")
	w := tabwriter.NewWriter(c.out, 0, 4, 4, ' ', 0)
	for _, item := range o.Cart {
		fmt.Fprintf(w, "    %d\t%s\t$%.2f\n", item.ID, item.Name, item.Price)
	}
	w.Flush()
}

func (c *console) printUsers(ctx context.Context) {
	ids, err := c.store.List(ctx, storage.Users)
	if err != nil {
		fmt.Fprintf(c.out, "failed to list users: %v\n", err)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 4, ' ', 0)
	for _, id := range ids {
		var u user.User
		found, err := c.store.Read(ctx, storage.Users, id, &u)
		if err != nil || !found {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.FirstName, u.LastName, u.Email, u.Address)
	}
	w.Flush()
}

func (c *console) printUser(ctx context.Context, email string) {
	var u user.User
	found, err := c.store.Read(ctx, storage.Users, email, &u)
	if err != nil || !found {
		fmt.Fprintf(c.out, "user %q not found\n", email)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.FirstName, u.LastName, u.Email, u.Address)
	w.Flush()
}
