package tagproto_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection"
	reflectionv1 "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	_ "google.golang.org/protobuf/types/known/timestamppb"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagproto"
	"github.com/jhump/taghelpers/tagresolve"
)

const widgetsProto = `
syntax = "proto3";

package widgets;

import "google/protobuf/timestamp.proto";

// taghelper:element a
// taghelper:element link
// taghelper:content append
message LinkTagHelper {
  enum Kind {
    KIND_UNSPECIFIED = 0;
  }
  message NestedTagHelper {}

  string href = 1;
  int32 max_items = 2;
  repeated string css_classes = 3;
  google.protobuf.Timestamp expires_at = 4;
  map<string, string> data = 5;
  Kind kind = 6;
}

message Plain {
  string value = 1;
}

// Renders a button.
message SubmitButtonTagHelper {
  bool disabled = 1;
}
`

var sources = map[string]string{
	"widgets.proto": widgetsProto,
	"bad_directive.proto": `
syntax = "proto3";
// taghelper:colour red
message ColourTagHelper {}
`,
	"broken.proto": `
syntax = "proto3";
message BrokenTagHelper {
  NoSuchType field = 1;
}
`,
	"missing_import.proto": `
syntax = "proto3";
import "not_there.proto";
`,
}

var linkAttrs = []taghelper.AttributeDescriptor{
	{Name: "href", PropertyName: "href", TypeName: "string"},
	{Name: "max-items", PropertyName: "max_items", TypeName: "int32"},
	{Name: "css-classes", PropertyName: "css_classes", TypeName: "repeated string"},
	{Name: "expires-at", PropertyName: "expires_at", TypeName: "google.protobuf.Timestamp"},
	{Name: "data", PropertyName: "data", TypeName: "map<string, string>"},
	{Name: "kind", PropertyName: "kind", TypeName: "widgets.LinkTagHelper.Kind"},
}

func wantWidgets(module string) []taghelper.Descriptor {
	return []taghelper.Descriptor{
		{
			TagName:         "a",
			TypeName:        "widgets.LinkTagHelper",
			ModuleName:      module,
			Attributes:      linkAttrs,
			ContentBehavior: taghelper.ContentBehaviorAppend,
		},
		{
			TagName:         "link",
			TypeName:        "widgets.LinkTagHelper",
			ModuleName:      module,
			Attributes:      linkAttrs,
			ContentBehavior: taghelper.ContentBehaviorAppend,
		},
		{
			TagName:    "nested",
			TypeName:   "widgets.LinkTagHelper.NestedTagHelper",
			ModuleName: module,
		},
		{
			TagName:    "submit-button",
			TypeName:   "widgets.SubmitButtonTagHelper",
			ModuleName: module,
			Attributes: []taghelper.AttributeDescriptor{
				{Name: "disabled", PropertyName: "disabled", TypeName: "bool"},
			},
		},
	}
}

func sourceResolver() *tagproto.SourceTypeResolver {
	return &tagproto.SourceTypeResolver{
		Accessor: protocompile.SourceAccessorFromMap(sources),
	}
}

func compileWidgets(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	files, err := compiler.Compile(t.Context(), "widgets.proto")
	require.NoError(t, err)
	return files[0]
}

func TestSourceTypeResolver(t *testing.T) {
	t.Parallel()
	res := tagproto.NewResolver(sourceResolver())

	descs, err := res.Resolve("widgets.proto")
	require.NoError(t, err)
	if diff := cmp.Diff(wantWidgets("widgets.proto"), descs); diff != "" {
		t.Errorf("unexpected descriptors (-want +got):\n%s", diff)
	}

	descs, err = res.Resolve("widgets.SubmitButtonTagHelper, widgets.proto")
	require.NoError(t, err)
	if diff := cmp.Diff(wantWidgets("widgets.proto")[3:], descs); diff != "" {
		t.Errorf("unexpected descriptors (-want +got):\n%s", diff)
	}
}

func TestSourceTypeResolver_Errors(t *testing.T) {
	t.Parallel()
	types := sourceResolver()

	_, err := types.ResolveTypes("nope.proto")
	require.ErrorIs(t, err, taghelper.ErrModuleNotFound)

	var loadErr *taghelper.TypeLoadError
	_, err = types.ResolveTypes("broken.proto")
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "broken.proto", loadErr.Module)
	require.NotErrorIs(t, err, taghelper.ErrModuleNotFound)

	_, err = types.ResolveTypes("missing_import.proto")
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "missing_import.proto", loadErr.Module)
	require.NotErrorIs(t, err, taghelper.ErrModuleNotFound)

	_, err = tagproto.NewResolver(types).Resolve("bad_directive.proto")
	require.ErrorContains(t, err, `unknown directive "taghelper:colour"`)
}

func TestSourceTypeResolver_ImportPaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ui"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui", "widgets.proto"), []byte(widgetsProto), 0o644))

	types := &tagproto.SourceTypeResolver{ImportPaths: []string{dir}}
	msgs, err := types.ResolveTypes("ui/widgets.proto")
	require.NoError(t, err)
	var names []string
	for _, md := range msgs {
		names = append(names, string(md.FullName()))
	}
	require.Equal(t, []string{"widgets.LinkTagHelper", "widgets.LinkTagHelper.NestedTagHelper", "widgets.SubmitButtonTagHelper"}, names)

	_, err = types.ResolveTypes("ui/other.proto")
	require.ErrorIs(t, err, taghelper.ErrModuleNotFound)
}

func TestSourceTypeResolver_Filter(t *testing.T) {
	t.Parallel()
	types := sourceResolver()
	types.Filter = func(md protoreflect.MessageDescriptor) bool {
		return md.Name() == "Plain"
	}
	descs, err := tagproto.NewResolver(types).Resolve("widgets.proto")
	require.NoError(t, err)
	require.Equal(t, []taghelper.Descriptor{{
		TagName:    "plain",
		TypeName:   "widgets.Plain",
		ModuleName: "widgets.proto",
		Attributes: []taghelper.AttributeDescriptor{{Name: "value", PropertyName: "value", TypeName: "string"}},
	}}, descs)
}

func TestFilesTypeResolver(t *testing.T) {
	t.Parallel()
	var files protoregistry.Files
	require.NoError(t, files.RegisterFile(compileWidgets(t)))

	res := tagproto.NewResolver(&tagproto.FilesTypeResolver{Files: &files})
	descs, err := res.Resolve("widgets.proto")
	require.NoError(t, err)
	if diff := cmp.Diff(wantWidgets("widgets.proto"), descs); diff != "" {
		t.Errorf("unexpected descriptors (-want +got):\n%s", diff)
	}

	_, err = res.Resolve("other.proto")
	require.ErrorIs(t, err, taghelper.ErrModuleNotFound)
	require.ErrorIs(t, err, protoregistry.NotFound)
}

type failingFiles struct{}

func (failingFiles) FindFileByPath(string) (protoreflect.FileDescriptor, error) {
	return nil, errors.New("registry unavailable")
}

func TestFilesTypeResolver_LoadError(t *testing.T) {
	t.Parallel()
	_, err := (&tagproto.FilesTypeResolver{Files: failingFiles{}}).ResolveTypes("widgets.proto")
	var loadErr *taghelper.TypeLoadError
	require.ErrorAs(t, err, &loadErr)
	require.EqualError(t, loadErr.Err, "registry unavailable")
}

func TestFilesTypeResolver_GlobalFiles(t *testing.T) {
	t.Parallel()
	// timestamp.proto is in the global registry, but has no tag helpers
	msgs, err := (&tagproto.FilesTypeResolver{}).ResolveTypes("google/protobuf/timestamp.proto")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestReflectionTypeResolver(t *testing.T) {
	t.Parallel()
	var files protoregistry.Files
	require.NoError(t, files.RegisterFile(compileWidgets(t)))
	cc := startReflectionServer(t, &files)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	types := tagproto.NewReflectionTypeResolver(ctx, cc, nil)
	defer types.Reset()

	res := tagresolve.NewResolver(tagresolve.NewCachingProvider(tagresolve.ScanModule[protoreflect.MessageDescriptor](types, tagproto.Factory)))
	descs, err := res.Resolve("widgets.proto")
	require.NoError(t, err)
	if diff := cmp.Diff(wantWidgets("widgets.proto"), descs); diff != "" {
		t.Errorf("unexpected descriptors (-want +got):\n%s", diff)
	}

	descs, err = res.Resolve("widgets.LinkTagHelper, widgets.proto")
	require.NoError(t, err)
	require.Len(t, descs, 2)

	_, err = res.Resolve("nope.proto")
	require.ErrorIs(t, err, taghelper.ErrModuleNotFound)
}

func startReflectionServer(t *testing.T, files *protoregistry.Files) *grpc.ClientConn {
	t.Helper()
	svr := grpc.NewServer()
	reflectionv1.RegisterServerReflectionServer(svr, reflection.NewServerV1(reflection.ServerOptions{
		Services:           svr,
		DescriptorResolver: files,
	}))
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = svr.Serve(l)
	}()
	t.Cleanup(svr.Stop)

	cc, err := grpc.NewClient(l.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cc.Close()
	})
	return cc
}

func TestMessagesInFile_SkipsMapEntries(t *testing.T) {
	t.Parallel()
	fd := compileWidgets(t)
	all := tagproto.MessagesInFile(fd, func(md protoreflect.MessageDescriptor) bool {
		return true
	})
	var names []string
	for _, md := range all {
		names = append(names, string(md.Name()))
	}
	require.Contains(t, names, "DataEntry")

	for _, md := range tagproto.MessagesInFile(fd, nil) {
		require.False(t, md.IsMapEntry())
		require.True(t, strings.HasSuffix(string(md.Name()), "TagHelper"))
	}
}
