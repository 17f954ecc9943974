package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/cli"
	"github.com/saylorsolutions/cloudcli/completion"
)

const progName = "cloud"

var serverStates = []string{"ACTIVE", "STOPPED", "BUILD", "ERROR"}

// newApp registers the commands of the cloud tool. Results are written to out.
// Handlers only report what they resolved, since no service is contacted.
func newApp(out io.Writer, opts ...cli.AppOption) *cli.App {
	app := cli.NewApp(progName, opts...)
	c := &commands{app: app, out: out}

	for _, group := range [][2]string{
		{"server", "Cloud servers"},
		{"file", "Object storage files"},
	} {
		if err := app.Group(group[0], group[1]); err != nil {
			panic(err)
		}
	}

	app.MustRegister("server_list", cli.Definition{
		Help: "List servers",
		Arguments: func() map[string]argument.Argument {
			return map[string]argument.Argument{
				"details": argument.NewFlag("Show detailed output", "-l", "--details"),
				"limit":   argument.NewInt("Show at most this many servers", "-n", "--limit").WithDefault(10),
				"status":  argument.NewStatus("Only servers in this state", serverStates, "--status"),
				"since":   argument.NewDate("Only servers created after this date", "--since"),
			}
		},
		Run: c.serverList,
	})
	app.MustRegister("server_info", cli.Definition{
		Help:   "Show server details",
		Syntax: "<server id>",
		Run:    c.serverInfo,
	})
	app.MustRegister("server_create", cli.Definition{
		Help:     "Create a server",
		LongHelp: "Create a server from a flavor or an image. The new server starts in the BUILD state.",
		Arguments: func() map[string]argument.Argument {
			return map[string]argument.Argument{
				"name":     argument.NewString("Server name", "--name"),
				"flavor":   argument.NewString("Hardware flavor id", "--flavor"),
				"image":    argument.NewString("Image id", "--image"),
				"disk":     argument.NewDataSize("Disk size, like 20GiB", "--disk").WithDefault(20 << 30),
				"metadata": argument.NewKeyValue("Metadata as KEY=VALUE, may be repeated", "-m", "--metadata"),
				"tags":     argument.NewCommaList("Comma separated tags", "--tags"),
			}
		},
		Required: cli.All{cli.Key("name"), cli.Any{cli.Key("flavor"), cli.Key("image")}},
		Run:      c.serverCreate,
	})
	app.MustRegister("file_upload", cli.Definition{
		Help:   "Upload a local file",
		Syntax: "<local path> [remote path] [options]",
		Arguments: func() map[string]argument.Argument {
			return map[string]argument.Argument{
				"container": argument.NewString("Destination container", "--container").WithDefault("pithos"),
				"chunk":     argument.NewDataSize("Upload chunk size", "--chunk-size").WithDefault(4 << 20),
				"header":    argument.NewRepeat("Extra header, may be repeated", "--header"),
			}
		},
		Run: c.fileUpload,
	})
	app.MustRegister("completion", cli.Definition{
		Help: "Print a shell completion script",
		Arguments: func() map[string]argument.Argument {
			return map[string]argument.Argument{
				"shell": argument.NewStatus("Target shell", completion.Shells, "--shell"),
			}
		},
		Run: c.completion,
	})
	return app
}

type commands struct {
	app *cli.App
	out io.Writer
}

func (c *commands) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *commands) serverList(_ context.Context, inv *cli.Invocation) error {
	limit := argument.GetOr(inv.Values, "limit", 10)
	if limit <= 0 {
		return cli.NewUsageError("limit must be positive, got %d", limit)
	}
	status := argument.GetOr(inv.Values, "status", serverStates[0])
	c.printf("Listing up to %d %s servers\n", limit, status)
	if since, err := argument.Get[time.Time](inv.Values, "since"); err == nil {
		c.printf("Created after: %s\n", since.Format(argument.FormattedLayout))
	}
	if argument.GetOr(inv.Values, "details", false) {
		c.printf("Details: on\n")
	}
	inv.Log.Debug("Listed servers", "limit", limit, "status", status)
	return nil
}

func (c *commands) serverInfo(_ context.Context, inv *cli.Invocation) error {
	var id string
	if err := cli.MapArgs(inv.Args, 1, &id); err != nil {
		return err
	}
	c.printf("Server: %s\n", id)
	return nil
}

func (c *commands) serverCreate(_ context.Context, inv *cli.Invocation) error {
	name := cli.MustGet(argument.Get[string](inv.Values, "name"))
	source := "flavor " + argument.GetOr(inv.Values, "flavor", "")
	if inv.Supplied.Has("image") {
		source = "image " + argument.GetOr(inv.Values, "image", "")
	}
	disk := argument.GetOr(inv.Values, "disk", int64(0))
	c.printf("Creating server %s from %s with a %s disk\n", name, source, argument.FormatDataSize(disk, true))
	metadata := argument.GetOr(inv.Values, "metadata", map[string]string(nil))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		c.printf("  %s=%s\n", key, metadata[key])
	}
	if tags := argument.GetOr(inv.Values, "tags", []string(nil)); len(tags) > 0 {
		c.printf("Tags: %s\n", strings.Join(tags, ", "))
	}
	inv.Log.Info("Created server", "name", name)
	return nil
}

func (c *commands) fileUpload(_ context.Context, inv *cli.Invocation) error {
	var local, remote string
	if err := cli.MapArgs(inv.Args, 1, &local, &remote); err != nil {
		return err
	}
	if len(remote) == 0 {
		remote = local
	}
	container := argument.GetOr(inv.Values, "container", "pithos")
	chunk := argument.GetOr(inv.Values, "chunk", int64(0))
	c.printf("Uploading %s to %s/%s in %s chunks\n", local, container, remote, argument.FormatDataSize(chunk, true))
	for _, header := range argument.GetOr(inv.Values, "header", []string(nil)) {
		c.printf("  %s\n", header)
	}
	return nil
}

func (c *commands) completion(_ context.Context, inv *cli.Invocation) error {
	shell := argument.GetOr(inv.Values, "shell", "bash")
	root := completion.Build(c.app.Name(), c.app.Tree(), c.app.ArgumentsFor)
	return completion.Write(c.out, root, shell)
}
