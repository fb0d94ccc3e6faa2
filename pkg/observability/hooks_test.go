package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExportHooks{}
	e.OnExportStart(ctx, 3)
	e.OnExportComplete(ctx, 2048, false, time.Second, nil)

	a := NoopAuthHooks{}
	a.OnRegister(ctx, nil)
	a.OnLogin(ctx, errors.New("bad password"))
	a.OnTokenRejected(ctx, "expired")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "export")
	c.OnCacheMiss(ctx, "export")
	c.OnCacheSet(ctx, "export", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/editor/export")
	h.OnResponse(ctx, "POST", "/api/editor/export", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Auth().(NoopAuthHooks); !ok {
		t.Error("Auth() should return NoopAuthHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customAuth := &testAuthHooks{}
	SetAuthHooks(customAuth)
	if Auth() != customAuth {
		t.Error("SetAuthHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore NoopExportHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}
}

// Test implementations
type testExportHooks struct{ NoopExportHooks }
type testAuthHooks struct{ NoopAuthHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
