package main

import (
	"chat-poll/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	// INSPECT_COLOURS colors the record kind column
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
}

var kindColours = map[string]color.Color{
	"user":   color.FgGreen,
	"chat":   color.FgCyan,
	"member": color.FgBlue,
	"invite": color.FgYellow,
	"msg":    color.FgWhite,
	"seq":    color.FgMagenta,
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatal("Config error: ", err)
	}
	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	prefix := flag.String("prefix", "", "Key prefix to scan, e.g. chat: or msg:00000000000000000001:")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Detail"})
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

	counts := make(map[string]int)
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(v []byte) error {
				kind, detail, err := repositories.Describe(key, v)
				if err != nil {
					// Keep scanning, one unreadable record should not hide the others
					detail = fmt.Sprintf("undecodable: %v", err)
				}
				counts[kind]++
				table.Append([]string{string(key), paint(config.Colours, kind), detail})
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
	summary := make([]string, 0, len(counts))
	for kind, count := range counts {
		summary = append(summary, fmt.Sprintf("%s=%d", kind, count))
	}
	sort.Strings(summary)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" records "), strings.Join(summary, " "))
}

func paint(enabled bool, kind string) string {
	c, ok := kindColours[kind]
	if !enabled || !ok {
		return kind
	}
	return c.Render(kind)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
