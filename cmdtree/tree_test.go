package cmdtree

import (
	"slices"
	"testing"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	name string
}

func testTree(t *testing.T) *Tree {
	tree := New()
	_, err := tree.AddCommand("server", "Server commands", nil)
	require.NoError(t, err)
	_, err = tree.AddCommand("server_list", "List servers", &testHandler{"list"})
	require.NoError(t, err)
	_, err = tree.AddCommand("server_info", "Server details", &testHandler{"info"})
	require.NoError(t, err)
	_, err = tree.AddSegments([]string{"server", "metadata", "set"}, "Set metadata", &testHandler{"metaset"})
	require.NoError(t, err)
	_, err = tree.AddCommand("file_upload", "Upload a file", &testHandler{"upload"}, "Uploads a local file", "to a container")
	require.NoError(t, err)
	return tree
}

func TestTree_AddCommand(t *testing.T) {
	tree := testTree(t)
	assert.Equal(t, 7, tree.Len())
	assert.True(t, tree.HasCommand("server_metadata"), "Intermediate commands should be created")
	assert.True(t, tree.HasCommand("file"))

	meta, err := tree.GetCommand("server_metadata")
	require.NoError(t, err)
	assert.False(t, meta.Runnable())
	assert.True(t, meta.HasSubcommands())
	assert.Equal(t, "metadata", meta.Name())
	assert.Equal(t, "server", meta.ParentPath())
	assert.Equal(t, []string{"server", "metadata"}, meta.Segments())

	upload, err := tree.GetCommand("file_upload")
	require.NoError(t, err)
	assert.True(t, upload.Runnable())
	assert.Equal(t, "Uploads a local file\nto a container", upload.LongHelp())
	assert.Equal(t, &testHandler{"upload"}, upload.Handler())
}

func TestTree_AddCommand_Redeclare(t *testing.T) {
	tree := testTree(t)
	cmd, err := tree.AddCommand("server_list", "List all servers", nil)
	require.NoError(t, err)
	assert.Equal(t, "List all servers", cmd.Help())
	assert.True(t, cmd.Runnable(), "Redeclaring without a handler should keep the bound handler")

	_, err = tree.AddCommand("server_list", "List servers again", &testHandler{"other"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "List all servers", cmd.Help(), "A failed redeclaration should not change the command")

	group, err := tree.AddCommand("server_metadata", "Metadata commands", &testHandler{"meta"})
	require.NoError(t, err)
	assert.True(t, group.Runnable(), "A structural command can become runnable")
	assert.Equal(t, "Metadata commands", group.Help())
}

func TestTree_AddCommand_InvalidPath(t *testing.T) {
	tests := map[string][]string{
		"Empty":         nil,
		"Empty segment": {"server", ""},
		"Whitespace":    {"server", "li st"},
		"Separator":     {"server", "list_all"},
	}
	for name, segments := range tests {
		t.Run(name, func(t *testing.T) {
			tree := New()
			_, err := tree.AddSegments(segments, "help", nil)
			assert.ErrorIs(t, err, ErrInvalidPath)
			assert.ErrorIs(t, err, argument.ErrDeclaration)
			assert.Zero(t, tree.Len())
		})
	}

	_, err := New().AddCommand("server__list", "help", nil)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestTree_FindBestMatch(t *testing.T) {
	tree := testTree(t)
	tests := map[string]struct {
		terms     []string
		path      string
		remaining []string
	}{
		"Exact": {
			terms: []string{"server", "list"},
			path:  "server_list",
		},
		"Extra terms": {
			terms:     []string{"server", "list", "extra"},
			path:      "server_list",
			remaining: []string{"extra"},
		},
		"Group only": {
			terms:     []string{"server", "bogus", "list"},
			path:      "server",
			remaining: []string{"bogus", "list"},
		},
		"Deep": {
			terms:     []string{"server", "metadata", "set", "k=v"},
			path:      "server_metadata_set",
			remaining: []string{"k=v"},
		},
		"No match": {
			terms:     []string{"bogus"},
			remaining: []string{"bogus"},
		},
		"Joined term": {
			terms:     []string{"server_list"},
			remaining: []string{"server_list"},
		},
		"No terms": {},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, remaining := tree.FindBestMatch(tc.terms)
			if len(tc.path) == 0 {
				assert.Nil(t, cmd)
			} else {
				require.NotNil(t, cmd)
				assert.Equal(t, tc.path, cmd.Path())
			}
			assert.Equal(t, len(tc.remaining), len(remaining))
			if len(tc.remaining) > 0 {
				assert.Equal(t, tc.remaining, remaining)
			}
		})
	}
}

func TestCommand_ParseOut(t *testing.T) {
	tree := testTree(t)
	server, err := tree.GetCommand("server")
	require.NoError(t, err)

	cmd, remaining := server.ParseOut([]string{"metadata", "set", "x"})
	assert.Equal(t, "server_metadata_set", cmd.Path())
	assert.Equal(t, []string{"x"}, remaining)

	cmd, remaining = server.ParseOut([]string{"upload"})
	assert.Same(t, server, cmd, "Nothing matched, so the command itself should be returned")
	assert.Equal(t, []string{"upload"}, remaining)
}

func TestTree_SubNames(t *testing.T) {
	tree := testTree(t)
	names, err := tree.SubNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"file", "server"}, names)

	names, err = tree.SubNames("server")
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "list", "metadata"}, names)

	subs, err := tree.GetSubcommands("server")
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "server_info", subs[0].Path())

	groups, err := tree.GetSubcommands("")
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	_, err = tree.SubNames("bogus")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tree.GetSubcommands("bogus")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tree.GetCommand("bogus")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTree_All(t *testing.T) {
	tree := testTree(t)
	var paths []string
	for cmd := range tree.All() {
		paths = append(paths, cmd.Path())
	}
	assert.Equal(t, []string{
		"file", "file_upload",
		"server", "server_info", "server_list", "server_metadata", "server_metadata_set",
	}, paths)

	var first []string
	for cmd := range tree.All() {
		first = append(first, cmd.Path())
		if len(first) == 2 {
			break
		}
	}
	assert.Len(t, first, 2)
}

func TestTree_AddTree(t *testing.T) {
	tree := testTree(t)
	other := New()
	_, err := other.AddCommand("server", "Compute servers", nil)
	require.NoError(t, err)
	_, err = other.AddCommand("server_delete", "Delete a server", &testHandler{"delete"})
	require.NoError(t, err)
	_, err = other.AddCommand("server_metadata", "Metadata", &testHandler{"meta"})
	require.NoError(t, err)
	_, err = other.AddCommand("image_list", "List images", &testHandler{"images"})
	require.NoError(t, err)

	require.NoError(t, tree.AddTree(other))
	assert.True(t, tree.HasCommand("server_delete"))
	assert.True(t, tree.HasCommand("image_list"))

	server, err := tree.GetCommand("server")
	require.NoError(t, err)
	assert.Equal(t, "Server commands", server.Help(), "Existing help should be kept")
	names := server.SubNames()
	assert.True(t, slices.Contains(names, "delete"))
	assert.True(t, slices.Contains(names, "list"), "Merging should not drop existing subcommands")

	meta, err := tree.GetCommand("server_metadata")
	require.NoError(t, err)
	assert.True(t, meta.Runnable(), "Handlers should be copied to structural commands")

	otherDelete, err := other.GetCommand("server_delete")
	require.NoError(t, err)
	treeDelete, err := tree.GetCommand("server_delete")
	require.NoError(t, err)
	assert.NotSame(t, otherDelete, treeDelete, "Trees should stay independent")

	assert.NoError(t, tree.AddTree(nil))
}

func TestTree_AddTree_Conflict(t *testing.T) {
	tree := testTree(t)
	before := tree.Len()
	other := New()
	_, err := other.AddCommand("server_list", "List servers", &testHandler{"other list"})
	require.NoError(t, err)
	_, err = other.AddCommand("network_list", "List networks", &testHandler{"networks"})
	require.NoError(t, err)

	assert.ErrorIs(t, tree.AddTree(other), ErrDuplicate)
	assert.Equal(t, before, tree.Len(), "A failed merge should not change the tree")
	assert.False(t, tree.HasCommand("network_list"))
}
