// cartctl drives the anonymous, client-resident cart: it mutates the
// local JSON cart file while signed out and, given a bearer token, folds
// the file into the server cart through POST /cart/merge. The local file
// is cleared only after the server acknowledges the merge, so a failed
// merge can always be retried.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"bakeshop/internal/domain"
	"bakeshop/internal/localcart"
)

func main() {
	logger := log.New(os.Stderr, "[cartctl] ", log.LstdFlags)

	file := flag.String("file", defaultCartPath(), "path of the local cart file")
	server := flag.String("server", "http://localhost:8080", "bakeshop API base URL")
	token := flag.String("token", os.Getenv("BAKESHOP_TOKEN"), "bearer token for merge")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	store := localcart.Open(*file)

	var err error
	switch args[0] {
	case "add":
		err = runAdd(store, args[1:])
	case "set":
		err = runSet(store, args[1:])
	case "remove":
		if len(args) != 2 {
			err = fmt.Errorf("usage: cartctl remove <productId>")
		} else {
			err = store.Remove(args[1])
		}
	case "clear":
		err = store.Clear()
	case "show":
		runShow(store)
	case "merge":
		err = runMerge(store, *server, *token, logger)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatalf("%s: %v", args[0], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cartctl [flags] <command>

commands:
  add <productId> <name> <priceCents> <qty>   add an item (existing id increments qty)
  set <productId> <qty>                       set quantity (0 removes)
  remove <productId>                          remove an item
  clear                                       empty the local cart
  show                                        print the local cart
  merge                                       fold the local cart into the server cart`)
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bakeshop-cart.json"
	}
	return filepath.Join(home, ".bakeshop-cart.json")
}

func runAdd(store *localcart.Store, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: cartctl add <productId> <name> <priceCents> <qty>")
	}
	var price int64
	var qty int
	if _, err := fmt.Sscan(args[2], &price); err != nil {
		return fmt.Errorf("bad price %q", args[2])
	}
	if _, err := fmt.Sscan(args[3], &qty); err != nil {
		return fmt.Errorf("bad quantity %q", args[3])
	}
	return store.Add(domain.CartItem{
		ProductID:  args[0],
		Name:       args[1],
		PriceCents: price,
		Quantity:   qty,
	})
}

func runSet(store *localcart.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cartctl set <productId> <qty>")
	}
	var qty int
	if _, err := fmt.Sscan(args[1], &qty); err != nil {
		return fmt.Errorf("bad quantity %q", args[1])
	}
	return store.SetQuantity(args[0], qty)
}

func runShow(store *localcart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("%-20s %-30s x%-3d %8d\n", it.ProductID, it.Name, it.Quantity, it.PriceCents)
	}
	fmt.Printf("subtotal: %d\n", store.SubtotalCents())
}

// runMerge replays the local cart through the merge endpoint and clears
// the file only on an acknowledged success.
func runMerge(store *localcart.Store, server, token string, logger *log.Logger) error {
	if token == "" {
		return fmt.Errorf("merge requires -token or BAKESHOP_TOKEN")
	}
	items := store.Items()
	if len(items) == 0 {
		fmt.Println("local cart is empty, nothing to merge")
		return nil
	}

	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, server+"/cart/merge", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("merge request failed, local cart kept: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("merge rejected (%d), local cart kept: %s", resp.StatusCode, raw)
	}

	if err := store.Clear(); err != nil {
		logger.Printf("merge succeeded but clearing local cart failed: %v", err)
		return err
	}
	fmt.Printf("merged %d item(s) into server cart\n", len(items))
	return nil
}
