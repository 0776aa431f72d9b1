package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/lseungyeop/portfolio-admin/api"
	"github.com/lseungyeop/portfolio-admin/app"
	"github.com/lseungyeop/portfolio-admin/auth"
	"github.com/lseungyeop/portfolio-admin/config"
	"github.com/lseungyeop/portfolio-admin/models"
	"github.com/lseungyeop/portfolio-admin/services"
	"github.com/lseungyeop/portfolio-admin/store"
)

type cli struct {
	settings  config.Settings
	client    *api.Client
	gate      *auth.Gate
	registry  *store.SkillRegistry
	projects  *store.ProjectRepo
	configs   *store.ConfigStore
	host      *services.ImageHost
	notifier  *app.Notifier
	navigator *app.RouteRecorder
}

func newCLI(settings config.Settings, client *api.Client, gate *auth.Gate,
	registry *store.SkillRegistry, projects *store.ProjectRepo, configs *store.ConfigStore,
	host *services.ImageHost, notifier *app.Notifier, navigator *app.RouteRecorder) *cli {

	c := &cli{
		settings:  settings,
		client:    client,
		gate:      gate,
		registry:  registry,
		projects:  projects,
		configs:   configs,
		host:      host,
		notifier:  notifier,
		navigator: navigator,
	}

	// Print every notification as it arrives, colored by level.
	notifier.Subscribe(func(n app.Notification) {
		switch n.Level {
		case app.LevelSuccess:
			color.Green("✔ %s", n.Message)
		case app.LevelBlocking:
			color.New(color.FgRed, color.Bold).Printf("✖ %s\n", n.Message)
		default:
			color.Red("✖ %s", n.Message)
		}
	})
	return c
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.usage()
		return 2
	}

	ctx := context.Background()
	var err error

	switch args[0] {
	case "login":
		err = c.login(ctx, args[1:])
	case "logout":
		c.gate.Logout()
		fmt.Println("Logged out.")
	case "status":
		fmt.Printf("session: %s\n", c.gate.State())
	case "project":
		err = c.project(ctx, args[1:])
	case "skill":
		err = c.skill(ctx, args[1:])
	case "config":
		err = c.siteConfig(ctx, args[1:])
	case "upload":
		err = c.upload(ctx, args[1:])
	case "preview":
		err = c.preview(args[1:])
	default:
		c.usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) usage() {
	fmt.Fprintln(os.Stderr, `Usage: portfolio-admin <command>

Commands:
  login [secret]          authenticate with the admin secret
  logout                  drop the stored credential
  status                  show session state
  project <subcommand>    list | show | create | edit | delete | upload-images
  skill <subcommand>      list | add | remove
  config <subcommand>     show | edit
  upload <file>           upload one image and print its URL
  preview                 serve the derived site theme locally`)
}

func (c *cli) login(ctx context.Context, args []string) error {
	var secret string
	if len(args) > 0 {
		secret = args[0]
	} else {
		fmt.Print("Admin secret: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			secret = strings.TrimSpace(scanner.Text())
		}
	}
	if secret == "" {
		return fmt.Errorf("no secret provided")
	}
	if err := c.gate.Login(ctx, secret); err != nil {
		return err
	}
	fmt.Println("Authenticated.")
	return nil
}

func (c *cli) requireAdmin() error {
	if !c.gate.Guard() {
		return fmt.Errorf("admin login required (run: portfolio-admin login)")
	}
	return nil
}

func (c *cli) project(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("project: missing subcommand")
	}
	switch args[0] {
	case "list":
		projects, err := c.projects.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%d\t%s\t%s\n", p.ID, p.Title, strings.Join(p.SkillNames(), ","))
		}
		return nil
	case "show":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		p, err := c.projects.FindByID(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%d  %s\n%s\nperiod: %s  team: %s\nskills: %s\n",
			p.ID, p.Title, p.Description, p.Period, p.TeamSize, strings.Join(p.SkillNames(), ", "))
		return nil
	case "create":
		return c.projectSubmit(ctx, nil, args[1:])
	case "edit":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return c.projectSubmit(ctx, &id, args[2:])
	case "delete":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := c.projects.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("Project deleted.")
		return nil
	case "upload-images":
		return c.projectUploadImages(ctx, args[1:])
	}
	return fmt.Errorf("project: unknown subcommand %q", args[0])
}

// projectSubmit drives a ProjectForm through the same flow the admin page
// uses: hydrate (when editing), apply flag edits, upload, submit.
func (c *cli) projectSubmit(ctx context.Context, editID *int64, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	title := fs.String("title", "", "project title")
	description := fs.String("description", "", "one-line overview")
	period := fs.String("period", "", "build period")
	teamSize := fs.String("team", "", "team size")
	content := fs.String("content", "", "detailed write-up")
	github := fs.String("github", "", "GitHub URL")
	demo := fs.String("demo", "", "demo URL")
	thumbnail := fs.String("thumbnail", "", "thumbnail image URL")
	erd := fs.String("erd", "", "ERD image URL")
	arch := fs.String("arch", "", "architecture image URL")
	skills := fs.String("skills", "", "comma-separated skill ids")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Hydration needs the current vocabulary in the registry snapshot.
	if _, err := c.registry.List(ctx); err != nil {
		return err
	}

	form := app.NewProjectForm(c.projects, c.host, c.notifier, c.navigator, c.settings.NavigateDelay)
	c.registry.OnRemoved(form.DeselectSkill)

	if editID != nil {
		if err := form.LoadForEdit(ctx, *editID); err != nil {
			return err
		}
	}

	form.Edit(func(d *models.ProjectDraft) {
		applyIfSet(&d.Title, *title)
		applyIfSet(&d.Description, *description)
		applyIfSet(&d.Period, *period)
		applyIfSet(&d.TeamSize, *teamSize)
		applyIfSet(&d.Content, *content)
		applyIfSet(&d.GithubURL, *github)
		applyIfSet(&d.DemoURL, *demo)
		applyIfSet(&d.ThumbnailURL, *thumbnail)
		applyIfSet(&d.ERDImageURL, *erd)
		applyIfSet(&d.ArchitectureImageURL, *arch)
		if *skills != "" {
			d.SkillIDs = parseIDList(*skills)
		}
	})

	return form.Submit(ctx)
}

// projectUploadImages uploads up to three image files concurrently, one
// per field. Fields are independent; each field still holds its own
// single-flight lock.
func (c *cli) projectUploadImages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload-images", flag.ContinueOnError)
	thumbnail := fs.String("thumbnail", "", "thumbnail image file")
	erd := fs.String("erd", "", "ERD image file")
	arch := fs.String("arch", "", "architecture image file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := app.NewProjectForm(c.projects, c.host, c.notifier, c.navigator, c.settings.NavigateDelay)

	files := map[string]string{
		app.FieldThumbnail:    *thumbnail,
		app.FieldERDImage:     *erd,
		app.FieldArchitecture: *arch,
	}

	g, gctx := errgroup.WithContext(ctx)
	for field, path := range files {
		if path == "" {
			continue
		}
		field, path := field, path
		g.Go(func() error {
			file, cleanup, err := openUpload(path)
			if err != nil {
				return err
			}
			defer cleanup()
			return form.UploadImage(gctx, field, file)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	draft := form.Draft()
	for field, url := range map[string]string{
		app.FieldThumbnail:    draft.ThumbnailURL,
		app.FieldERDImage:     draft.ERDImageURL,
		app.FieldArchitecture: draft.ArchitectureImageURL,
	} {
		if url != "" {
			fmt.Printf("%s\t%s\n", field, url)
		}
	}
	return nil
}

func (c *cli) skill(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("skill: missing subcommand")
	}
	switch args[0] {
	case "list":
		skills, err := c.registry.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range skills {
			fmt.Printf("%d\t%s\t%s\n", s.ID, s.Name, s.Category)
		}
		return nil
	case "add":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("usage: skill add <name> <category>")
		}
		skill, err := c.registry.Add(ctx, args[1], models.SkillCategory(args[2]))
		if err != nil {
			return err
		}
		fmt.Printf("Added skill %d: %s (%s)\n", skill.ID, skill.Name, skill.Category)
		return nil
	case "remove":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		// Refresh the snapshot so rollback has the entry to restore.
		if _, err := c.registry.List(ctx); err != nil {
			return err
		}
		if err := c.registry.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Println("Skill removed.")
		return nil
	}
	return fmt.Errorf("skill: unknown subcommand %q", args[0])
}

func (c *cli) siteConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config: missing subcommand")
	}
	switch args[0] {
	case "show":
		cfg := c.configs.Fetch(ctx)
		fmt.Printf("mainTitle:      %s\nsubTitle:       %s\nmainImageUrl:   %s\nprimaryColor:   %s\nsecondaryColor: %s\nnavColor:       %s\n",
			cfg.MainTitle, cfg.SubTitle, cfg.MainImageURL, cfg.PrimaryColor, cfg.SecondaryColor, cfg.NavColor)
		return nil
	case "edit":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		fs := flag.NewFlagSet("config edit", flag.ContinueOnError)
		mainTitle := fs.String("main-title", "", "main title")
		subTitle := fs.String("sub-title", "", "sub title")
		mainImage := fs.String("main-image", "", "main image URL")
		mainImageFile := fs.String("main-image-file", "", "main image file to upload")
		primary := fs.String("primary", "", "primary color")
		secondary := fs.String("secondary", "", "secondary color")
		nav := fs.String("nav", "", "nav color (hex or transparent)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		form := app.NewSettingsForm(c.configs, c.host, c.notifier, c.navigator, c.settings.ConfigNavigateDelay)
		form.Load(ctx)

		if *mainImageFile != "" {
			file, cleanup, err := openUpload(*mainImageFile)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := form.UploadMainImage(ctx, file); err != nil {
				return err
			}
		}

		form.Edit(func(cfg *models.SiteConfig) {
			applyIfSet(&cfg.MainTitle, *mainTitle)
			applyIfSet(&cfg.SubTitle, *subTitle)
			applyIfSet(&cfg.MainImageURL, *mainImage)
			applyIfSet(&cfg.PrimaryColor, *primary)
			applyIfSet(&cfg.SecondaryColor, *secondary)
			applyIfSet(&cfg.NavColor, *nav)
		})

		return form.Submit(ctx)
	}
	return fmt.Errorf("config: unknown subcommand %q", args[0])
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: upload <file>")
	}
	file, cleanup, err := openUpload(args[0])
	if err != nil {
		return err
	}
	defer cleanup()
	url, err := c.host.Upload(ctx, file)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

// openUpload prepares a local file for the image gateway. Content type
// comes from the extension; the gateway rejects anything that is not
// image/*.
func openUpload(path string) (models.Upload, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Upload{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return models.Upload{}, nil, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upload := models.Upload{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Reader:      f,
	}
	return upload, func() { f.Close() }, nil
}

func applyIfSet(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func parseIDList(s string) []int64 {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
