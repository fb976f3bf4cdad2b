// list-files prints the contents of a cloud storage folder the way the
// batch CLI will see it. Useful for checking what a submission would pick
// up before running one.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/receipt-lens/receipt-lens/internal/cloudstore"
	"github.com/receipt-lens/receipt-lens/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := ff.NewFlagSet("list-files")
	var (
		bucket = fs.StringLong("bucket", cfg.Bucket, "Cloud storage bucket (or set RECEIPT_LENS_GCS_BUCKET)")
		folder = fs.StringLong("folder", "", "Folder within the bucket")
	)

	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := cloudstore.NewGCS(ctx, *bucket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.List(ctx, *folder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSIZE\tPATH")
	for _, e := range entries {
		kind := "file"
		if e.Folder {
			kind = "folder"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", kind, e.Name, e.Size, e.Path)
	}
	w.Flush()

	files := cloudstore.FilePaths(entries)
	fmt.Printf("\n%d processable file(s)\n", len(files))
}
