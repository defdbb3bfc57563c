package dispatch

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/spinesniff/internal/assettree"
	"github.com/danmuck/spinesniff/internal/skeleton"
	"github.com/danmuck/spinesniff/internal/testutil/testlog"
)

type fakeRuntime struct {
	version  skeleton.SchemaVersion
	basePath string
	text     string
	binary   []byte
	atlasErr error
	calls    int
}

type fakeAtlas struct {
	version skeleton.SchemaVersion
	page    any
}

func (f *fakeRuntime) Version() skeleton.SchemaVersion { return f.version }

func (f *fakeRuntime) BuildAtlas(text, basePath string, textures TextureLoader) (any, error) {
	f.calls++
	if f.atlasErr != nil {
		return nil, f.atlasErr
	}
	f.basePath = basePath
	page, err := textures.LoadTexture(basePath + "/boss.png")
	if err != nil {
		return nil, err
	}
	return &fakeAtlas{version: f.version, page: page}, nil
}

func (f *fakeRuntime) BuildSkeletonFromText(atlas any, text string) (any, error) {
	f.text = text
	return "text-skeleton", nil
}

func (f *fakeRuntime) BuildSkeletonFromBinary(atlas any, r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.binary = b
	return "binary-skeleton", nil
}

type textures map[string]string

func (t textures) LoadTexture(path string) (any, error) {
	tex, ok := t[path]
	if !ok {
		return nil, errors.New("texture not found: " + path)
	}
	return tex, nil
}

func newDispatcher(t *testing.T, rts ...Runtime) *Dispatcher {
	t.Helper()
	testlog.Start(t)
	r := NewRegistry()
	for _, rt := range rts {
		if err := r.Register(rt); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return NewDispatcher(r, testlog.Logger(t), true)
}

func detect(t *testing.T, atlas assettree.Node) skeleton.Result {
	t.Helper()
	res := skeleton.NewDetector(skeleton.DefaultConfig(), testlog.Logger(t)).Detect(atlas)
	if !res.Success {
		t.Fatalf("fixture detection failed: %v", res.Err)
	}
	return res
}

func TestLoadTextualSkeleton(t *testing.T) {
	v2 := &fakeRuntime{version: skeleton.V2}
	v4 := &fakeRuntime{version: skeleton.V4}
	d := newDispatcher(t, v2, v4)

	root := assettree.NewRoot("Mob.wz")
	dir := root.MustAdd("8880000", nil)
	atlas := dir.MustAdd("boss.atlas", assettree.Text("boss.png\n"))
	doc := `{"skeleton":{"spine":"2.1.27"}}`
	dir.MustAdd("boss.json", assettree.Text(doc))

	loaded, ok := d.Load(detect(t, atlas), textures{"Mob.wz/8880000/boss.png": "tex"})
	if !ok {
		t.Fatalf("expected load to succeed")
	}
	if loaded.Version != skeleton.V2 || loaded.LoadType != skeleton.LoadTextual || loaded.Skeleton != "text-skeleton" {
		t.Fatalf("unexpected loaded: %+v", loaded)
	}
	if a, ok := loaded.Atlas.(*fakeAtlas); !ok || a.version != skeleton.V2 || a.page != "tex" {
		t.Fatalf("atlas built by wrong runtime: %+v", loaded.Atlas)
	}
	if v2.text != doc || v2.basePath != "Mob.wz/8880000" || v4.calls != 0 {
		t.Fatalf("dispatch routed incorrectly: v2=%+v v4 calls=%d", v2, v4.calls)
	}
}

func TestLoadBinarySkeletonRestoresStream(t *testing.T) {
	v4 := &fakeRuntime{version: skeleton.V4}
	d := newDispatcher(t, v4)

	blob := append([]byte{1, 2, 3, 4, 5, 6, 7, 8, 7}, "4.1.24"...)
	blob = append(blob, 0xca, 0xfe)
	stream := bytes.NewReader(append(append([]byte("HEAD"), blob...), "TAIL"...))
	if _, err := stream.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}

	root := assettree.NewRoot("root")
	atlas := root.MustAdd("boss.atlas", assettree.Text("boss.png\n"))
	root.MustAdd("boss", assettree.Blob{Stream: stream, Offset: 4, Length: int64(len(blob))})

	loaded, ok := d.Load(detect(t, atlas), textures{"root/boss.png": "tex"})
	if !ok || loaded.Skeleton != "binary-skeleton" {
		t.Fatalf("expected binary load, got %+v ok=%v", loaded, ok)
	}
	if !bytes.Equal(v4.binary, blob) {
		t.Fatalf("runtime saw %x, want %x", v4.binary, blob)
	}
	if pos, _ := stream.Seek(0, io.SeekCurrent); pos != 2 {
		t.Fatalf("stream position moved to %d", pos)
	}
}

func TestLoadAbsentResults(t *testing.T) {
	v4 := &fakeRuntime{version: skeleton.V4}
	d := newDispatcher(t, v4)

	root := assettree.NewRoot("root")
	atlas := root.MustAdd("boss.atlas", assettree.Text("boss.png\n"))
	skel := root.MustAdd("boss.json", assettree.Text(`{"skeleton":{"spine":"4.1.24"}}`))
	good := skeleton.Result{
		Success:  true,
		Atlas:    atlas,
		Skeleton: skel,
		LoadType: skeleton.LoadTextual,
		Version:  skeleton.V4,
	}
	tex := textures{"root/boss.png": "tex"}

	if _, ok := d.Load(skeleton.Result{Err: skeleton.ErrMissingNode}, tex); ok {
		t.Fatalf("failed detection must not load")
	}

	missing := good
	missing.Version = skeleton.V2
	if _, ok := d.Load(missing, tex); ok {
		t.Fatalf("missing runtime must not load")
	}

	otherKind := good
	otherKind.Skeleton = root.MustAdd("other", assettree.Other{Data: 1})
	if _, ok := d.Load(otherKind, tex); ok {
		t.Fatalf("unrecognized skeleton value must not load")
	}

	textAsBinary := good
	textAsBinary.LoadType = skeleton.LoadBinary
	if _, ok := d.Load(textAsBinary, tex); ok {
		t.Fatalf("text value under binary load type must not load")
	}

	nilStream := good
	nilStream.LoadType = skeleton.LoadBinary
	nilStream.Skeleton = root.MustAdd("boss.skel", assettree.Blob{Length: 4})
	if _, ok := d.Load(nilStream, tex); ok {
		t.Fatalf("blob without stream must not load")
	}
	if v4.calls != 0 {
		t.Fatalf("runtime must not be called on structural mismatch, calls=%d", v4.calls)
	}

	if _, ok := d.Load(good, textures{}); ok {
		t.Fatalf("texture failure must not load")
	}

	v4.atlasErr = errors.New("bad atlas")
	if _, ok := d.Load(good, tex); ok {
		t.Fatalf("atlas build error must not load")
	}

	v4.atlasErr = nil
	if _, ok := d.Load(good, tex); !ok {
		t.Fatalf("expected valid result to load")
	}
}
