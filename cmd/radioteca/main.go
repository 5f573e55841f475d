package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("server", envOr("RADIOTECA_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout HTTP")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	client := &http.Client{Timeout: *timeout}
	api := *baseURL + "/api/v1"

	switch args[0] {
	case "health":
		run(client, api+"/health")
	case "version":
		run(client, api+"/version")
	case "config":
		run(client, api+"/config")
	case "programs":
		run(client, api+"/programs")
	case "episodes":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: radioteca episodes <program-id> [page]")
			os.Exit(2)
		}
		u := api + "/programs/" + url.PathEscape(args[1]) + "/episodes"
		if len(args) > 2 {
			u += "?page=" + url.QueryEscape(args[2])
		}
		run(client, u)
	case "search":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: radioteca search <term>")
			os.Exit(2)
		}
		run(client, api+"/search?q="+url.QueryEscape(args[1]))
	default:
		fmt.Fprintln(os.Stderr, "Commande inconnue:", args[0])
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: radioteca [health|version|config|programs|episodes <id> [page]|search <term>]")
	os.Exit(2)
}

func run(client *http.Client, url string) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
