package main

import (
	"chat-room/domain"
	"chat-room/observability"
	"chat-room/repositories"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", string(repositories.MessagePrefix()), "Prefix to scan (room:, msg:, msgid:, seq:)")
	room := flag.String("room", "", "Only show records of this room")
	raw := flag.Bool("raw", false, "Show values in CBOR diagnostic notation")
	serve := flag.Int("serve", 0, "Serve the web inspector on this port instead of printing a table")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	if *serve > 0 {
		serveInspector(db, *serve)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Room", "Time", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				record := repositories.Describe(string(item.Key()), v)
				if *room != "" && record.Room != domain.RoomID(*room) {
					return nil
				}

				detail := record.Detail
				if *raw {
					diag, err := repositories.Diagnose(v)
					if err != nil {
						// Keep going, one corrupt value should not hide the others
						diag = fmt.Sprintf("undecodable: %v", err)
					}
					detail = diag
				}

				at := "--:--:--"
				if !record.At.IsZero() {
					at = record.At.Local().Format("2006-01-02 15:04:05")
				}
				table.Append([]string{record.Key, record.Kind, string(record.Room), at, detail})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d record(s)\n", count)
}

// serveInspector keeps the read-only web inspector up until Ctrl+C.
func serveInspector(db *badger.DB, port int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database.StartDebugServer(db, port, "/inspect", observability.InspectMapper)
	fmt.Printf("Inspector started at http://localhost:%d/inspect?prefix=%s\n", port, repositories.MessagePrefix())
	<-ctx.Done()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		return nil, fmt.Errorf("%w: stop the server or open the database once in write mode", err)
	}
	return db, err
}
