package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tokfilter/config"
	"tokfilter/internal/adapter/analyzer"
	"tokfilter/internal/adapter/fs"
)

func main() {
	dir := flag.String("dir", ".", "Directory with text files")
	rounds := flag.Int("n", 5, "Number of passes over the corpus")
	lowercase := flag.Bool("lowercase", false, "Add the lowercase filter")
	stopwords := flag.Bool("stopwords", false, "Add the stopword filter")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	files, err := fs.NewWalker(cfg.Input.Includes, cfg.Input.Excludes).Walk(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *dir, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No matching files under %s\n", *dir)
		os.Exit(1)
	}

	var corpus [][]byte
	var totalBytes int64
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", f.Path, err)
			continue
		}
		corpus = append(corpus, data)
		totalBytes += int64(len(data))
	}

	opts := analyzer.PipelineOptions{Lowercase: *lowercase, Stopwords: *stopwords}

	fmt.Println("TOKEN FILTER BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files: %d  Bytes: %d  Passes: %d\n", len(corpus), totalBytes, *rounds)
	fmt.Println(strings.Repeat("-", 70))

	var read, written, dropped int
	start := time.Now()
	for i := 0; i < *rounds; i++ {
		for _, data := range corpus {
			p := analyzer.NewPipeline(bytes.NewReader(data), opts)
			n, err := drain(p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
				os.Exit(1)
			}
			read += p.Read()
			written += n
			dropped += p.Stats().Dropped()
		}
	}
	elapsed := time.Since(start)

	secs := elapsed.Seconds()
	if secs == 0 {
		secs = 1e-9
	}
	fmt.Printf("Elapsed:        %s\n", elapsed.Round(time.Microsecond))
	fmt.Printf("Tokens read:    %d (%.0f/s)\n", read, float64(read)/secs)
	fmt.Printf("Tokens written: %d\n", written)
	fmt.Printf("Tokens dropped: %d (%.2f%%)\n", dropped, percent(dropped, read))
	fmt.Printf("Throughput:     %.2f MB/s\n", float64(totalBytes)*float64(*rounds)/secs/1e6)
}

func drain(p *analyzer.Pipeline) (int, error) {
	n := 0
	for {
		_, err := p.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
