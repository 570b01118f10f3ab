package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"
)

type uiEventRecord struct {
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	RowID     string            `json:"row_id,omitempty"`
	Query     string            `json:"query,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type queryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type eventReport struct {
	Source      string         `json:"source"`
	FirstEvent  time.Time      `json:"first_event"`
	LastEvent   time.Time      `json:"last_event"`
	TotalEvents int            `json:"total_events"`
	ByEvent     map[string]int `json:"by_event"`
	TopQueries  []queryCount   `json:"top_queries"`
	BadLines    int            `json:"bad_lines"`
}

func main() {
	var inputPath string
	var outputPath string
	var topN int
	flag.StringVar(&inputPath, "in", "", "input ndjson event log path (required)")
	flag.StringVar(&outputPath, "out", "", "output JSON path (optional, defaults to stdout)")
	flag.IntVar(&topN, "top", 10, "number of search queries to report")
	flag.Parse()

	if inputPath == "" {
		exit(errors.New("missing --in path"))
	}
	if topN <= 0 {
		exit(errors.New("--top must be positive"))
	}

	report, err := buildReport(inputPath, topN)
	if err != nil {
		exit(fmt.Errorf("aggregate events: %w", err))
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exit(fmt.Errorf("encode report: %w", err))
	}

	if outputPath == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(outputPath, append(encoded, '\n'), 0o644); err != nil {
		exit(fmt.Errorf("write output: %w", err))
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "eventstats: %v\n", err)
	os.Exit(1)
}

func buildReport(path string, topN int) (*eventReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	report := &eventReport{
		Source:  path,
		ByEvent: map[string]int{},
	}
	queries := map[string]int{}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record uiEventRecord
		if err := json.Unmarshal(line, &record); err != nil || record.Event == "" {
			report.BadLines++
			continue
		}
		report.TotalEvents++
		report.ByEvent[record.Event]++
		if record.Event == "search" && record.Query != "" {
			queries[record.Query]++
		}
		if report.FirstEvent.IsZero() || record.Timestamp.Before(report.FirstEvent) {
			report.FirstEvent = record.Timestamp
		}
		if record.Timestamp.After(report.LastEvent) {
			report.LastEvent = record.Timestamp
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for query, count := range queries {
		report.TopQueries = append(report.TopQueries, queryCount{Query: query, Count: count})
	}
	sort.Slice(report.TopQueries, func(i, j int) bool {
		if report.TopQueries[i].Count != report.TopQueries[j].Count {
			return report.TopQueries[i].Count > report.TopQueries[j].Count
		}
		return report.TopQueries[i].Query < report.TopQueries[j].Query
	})
	if len(report.TopQueries) > topN {
		report.TopQueries = report.TopQueries[:topN]
	}
	return report, nil
}
