// Command main is a small CLI against the memory map backend. It drives
// the same form workflows the web client uses, which makes it handy for
// smoke-testing a deployment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"memorymap/internal/backend/rest"
	"memorymap/internal/form"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	client, err := rest.FromEnv()
	if err != nil {
		log.Fatalf("Backend client setup failed: %v (set MEMORYMAP_URL and MEMORYMAP_ANON_KEY)", err)
	}
	bundle := client.Bundle()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "signin", "signup":
		fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		username := fs.String("username", "", "username (signup only, defaults to the email local part)")
		_ = fs.Parse(os.Args[2:])

		f := form.NewAuthForm(bundle)
		f.Email = *email
		f.Password = *password
		f.Username = *username
		if os.Args[1] == "signup" {
			f.SetMode(form.ModeSignUp)
		}
		f.OnSuccess = func() { fmt.Println("OK") }
		f.Submit(ctx)
		fmt.Println(f.Message())

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		title := fs.String("title", "", "memory title")
		description := fs.String("desc", "", "memory description")
		date := fs.String("date", "", "date as YYYY-MM-DD (defaults to today)")
		lat := fs.Float64("lat", 0, "latitude")
		lng := fs.Float64("lng", 0, "longitude")
		tags := fs.String("tags", "", "comma-separated tags")
		image := fs.String("image", "", "path to an image file (optional)")
		_ = fs.Parse(os.Args[2:])

		f := form.NewAddMemoryForm(bundle, &form.Location{Lat: *lat, Lng: *lng})
		f.Title = *title
		f.Description = *description
		if *date != "" {
			f.Date = *date
		}
		for _, tag := range strings.Split(*tags, ",") {
			f.AddTag(tag)
		}
		if *image != "" {
			content, err := os.ReadFile(*image)
			if err != nil {
				log.Fatalf("Reading image failed: %v", err)
			}
			f.SelectImage(filepath.Base(*image), content)
		}
		f.OnAdded = func() { fmt.Println("OK") }
		f.Submit(ctx)
		fmt.Println(f.Message())

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "maximum records to fetch")
		_ = fs.Parse(os.Args[2:])

		memories, err := bundle.Memories.List(ctx, *limit)
		if err != nil {
			log.Fatalf("Listing memories failed: %v", err)
		}
		for _, m := range memories {
			fmt.Printf("%d\t%s\t%.4f,%.4f\t%s\t%s\n",
				m.ID, m.Date, m.Latitude, m.Longitude, m.Title, strings.Join(m.Tags, ","))
		}

	case "whoami":
		identity, err := bundle.Auth.CurrentUser(ctx)
		if err != nil {
			log.Fatalf("Session lookup failed: %v", err)
		}
		if identity == nil {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%d %s\n", identity.ID, identity.Email)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: memoryctl <signin|signup|add|list|whoami> [flags]")
	os.Exit(2)
}
