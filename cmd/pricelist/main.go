package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pricelist/internal"
	"pricelist/internal/catalog"
	"pricelist/internal/config"
	"pricelist/internal/listener"
	"pricelist/internal/logger"
	"pricelist/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	cmd := ""
	args := []string{}
	if len(os.Args) > 1 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}
	if strings.HasPrefix(cmd, "-") {
		cmd, args = "", os.Args[1:]
	}

	switch cmd {
	case "":
		fs := newFlagSet("default", &cfg)
		_ = fs.Parse(args)
		cat := load(cfg)
		must(pipeline.ExportHTML(cat.Items(), cfg.OutputHTML))
		fmt.Printf("exported %d items from %d files to %s\n", cat.Len(), len(cat.Files()), cfg.OutputHTML)
		runSearchLoop(os.Stdin, os.Stdout, cat, cfg)
	case "search":
		fs := newFlagSet(cmd, &cfg)
		_ = fs.Parse(args)
		runSearchLoop(os.Stdin, os.Stdout, load(cfg), cfg)
	case "find":
		fs := newFlagSet(cmd, &cfg)
		query := fs.String("q", "", "search text (empty matches everything)")
		_ = fs.Parse(args)
		printResults(os.Stdout, load(cfg).Find(*query), cfg)
	case "export:html":
		fs := newFlagSet(cmd, &cfg)
		_ = fs.Parse(args)
		cat := load(cfg)
		must(pipeline.ExportHTML(cat.Items(), cfg.OutputHTML))
		fmt.Printf("exported %d items from %d files to %s\n", cat.Len(), len(cat.Files()), cfg.OutputHTML)
	case "export:xlsx":
		fs := newFlagSet(cmd, &cfg)
		out := fs.String("xlsx", "", "output xlsx path")
		_ = fs.Parse(args)
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--xlsx is required"))
		}
		cat := load(cfg)
		must(pipeline.ExportXLSX(cat.Items(), *out))
		fmt.Printf("exported %d items to %s\n", cat.Len(), *out)
	case "watch":
		fs := newFlagSet(cmd, &cfg)
		fs.IntVar(&cfg.WatchIntervalSec, "interval", cfg.WatchIntervalSec, "poll interval in seconds")
		_ = fs.Parse(args)
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(listener.NewService(cfg, logger.New(cfg.LogLevel)).Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func newFlagSet(name string, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cfg.PriceDir, "dir", cfg.PriceDir, "folder with price files")
	fs.StringVar(&cfg.FileMarker, "marker", cfg.FileMarker, "substring that marks price files")
	fs.StringVar(&cfg.OutputHTML, "out", cfg.OutputHTML, "output html path")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "debug|info|warn|error")
	return fs
}

func load(cfg config.Config) *catalog.Catalog {
	cat, _, err := pipeline.LoadCatalog(cfg, logger.New(cfg.LogLevel))
	must(err)
	return cat
}

func runSearchLoop(in io.Reader, out io.Writer, cat *catalog.Catalog, cfg config.Config) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Введите текст для поиска (или 'exit' для выхода): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "exit") {
			fmt.Fprintln(out, "Работа программы завершена.")
			return
		}
		printResults(out, cat.Find(query), cfg)
	}
}

func printResults(out io.Writer, items []internal.PricedItem, cfg config.Config) {
	if len(items) == 0 {
		fmt.Fprintln(out, "Ничего не найдено.")
		return
	}
	pipeline.RenderText(out, items, pipeline.TextOptions{MaxNameWidth: cfg.TableNameWidth})
}

func usage() {
	fmt.Println("usage: pricelist [command] [--dir=.] [--out=output.html]")
	fmt.Println("commands:")
	fmt.Println("  (none)        export html, then interactive search")
	fmt.Println("  search        interactive search")
	fmt.Println("  find --q=...  one-shot search")
	fmt.Println("  export:html")
	fmt.Println("  export:xlsx --xlsx=./out/catalog.xlsx")
	fmt.Println("  watch [--interval=10]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
