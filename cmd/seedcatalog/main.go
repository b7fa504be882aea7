package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gradpath/gradpath-backend/internal/db"
	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/repos"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/types"
)

type seedCourse struct {
	Code          string   `yaml:"code"`
	Name          string   `yaml:"name"`
	Credits       int      `yaml:"credits"`
	Required      *bool    `yaml:"required"`
	Prerequisites []string `yaml:"prerequisites"`
}

type seedFile struct {
	Courses []seedCourse `yaml:"courses"`
}

// seedcatalog loads a YAML course catalog and upserts it by course code, so
// the same file can be re-applied after edits.
func main() {
	var file string
	var dryRun bool
	flag.StringVar(&file, "file", "catalog.yaml", "path to the catalog YAML file")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned changes without writing")
	flag.Parse()

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("read %s: %v\n", file, err)
		os.Exit(1)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		fmt.Printf("parse %s: %v\n", file, err)
		os.Exit(1)
	}
	if len(seed.Courses) == 0 {
		fmt.Println("no courses in seed file")
		return
	}

	log := logger.NewNop()
	ctx := context.Background()

	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		fmt.Printf("init database: %v\n", err)
		os.Exit(1)
	}
	if err := databaseService.AutoMigrateAll(); err != nil {
		fmt.Printf("migrate: %v\n", err)
		os.Exit(1)
	}
	courseRepo := repos.NewCourseRepo(databaseService.DB(), log)

	created, updated, skipped := 0, 0, 0
	for _, entry := range seed.Courses {
		code := services.NormalizeCourseCode(entry.Code)
		if code == "" || entry.Name == "" {
			fmt.Printf("skipping entry with missing code or name: %+v\n", entry)
			skipped++
			continue
		}
		credits := entry.Credits
		if credits == 0 {
			credits = 3
		}
		required := true
		if entry.Required != nil {
			required = *entry.Required
		}
		prereqs := make([]string, 0, len(entry.Prerequisites))
		for _, p := range entry.Prerequisites {
			if pc := services.NormalizeCourseCode(p); pc != "" && pc != code {
				prereqs = append(prereqs, pc)
			}
		}

		existing, err := courseRepo.GetByCodes(ctx, nil, []string{code})
		if err != nil {
			fmt.Printf("lookup %s: %v\n", code, err)
			os.Exit(1)
		}

		if dryRun {
			if len(existing) > 0 {
				fmt.Printf("[dry-run] update %s\n", code)
			} else {
				fmt.Printf("[dry-run] create %s\n", code)
			}
			continue
		}

		if len(existing) > 0 {
			course := existing[0]
			course.Name = entry.Name
			course.Credits = credits
			course.Required = required
			if err := course.SetPrerequisiteCodes(prereqs); err != nil {
				fmt.Printf("encode prerequisites for %s: %v\n", code, err)
				os.Exit(1)
			}
			if _, err := courseRepo.Update(ctx, nil, []*types.Course{course}); err != nil {
				fmt.Printf("update %s: %v\n", code, err)
				os.Exit(1)
			}
			updated++
			continue
		}

		course := &types.Course{Code: code, Name: entry.Name, Credits: credits, Required: required}
		if err := course.SetPrerequisiteCodes(prereqs); err != nil {
			fmt.Printf("encode prerequisites for %s: %v\n", code, err)
			os.Exit(1)
		}
		if _, err := courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
			fmt.Printf("create %s: %v\n", code, err)
			os.Exit(1)
		}
		created++
	}

	fmt.Printf("done; created=%d updated=%d skipped=%d\n", created, updated, skipped)
}
