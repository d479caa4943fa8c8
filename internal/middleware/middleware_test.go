package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/repository/memory"
)

func captureUser(got *string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		*got, _ = ctx.UserValue(httpcontext.UserValueUserID).(string)
		ctx.SetStatusCode(fasthttp.StatusOK)
	}
}

func TestIdentityDemoUser(t *testing.T) {
	var got string
	h := Identity(IdentityConfig{DemoUserID: "demo"}, nil)(captureUser(&got))

	var ctx fasthttp.RequestCtx
	h(&ctx)
	if got != "demo" {
		t.Fatalf("expected demo user, got %q", got)
	}
}

func TestIdentityJWT(t *testing.T) {
	secret := "s3cret"
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u42",
		"iss":     "timeblock",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	var got string
	h := Identity(IdentityConfig{JWTSecret: secret, JWTIssuer: "timeblock"}, nil)(captureUser(&got))

	var ok fasthttp.RequestCtx
	ok.Request.Header.Set("Authorization", "Bearer "+signed)
	h(&ok)
	if got != "u42" || ok.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected u42 with 200, got %q / %d", got, ok.Response.StatusCode())
	}

	got = ""
	var missing fasthttp.RequestCtx
	h(&missing)
	if missing.Response.StatusCode() != fasthttp.StatusUnauthorized || got != "" {
		t.Fatalf("expected 401 without token, got %d", missing.Response.StatusCode())
	}

	var bad fasthttp.RequestCtx
	bad.Request.Header.Set("Authorization", "Bearer "+signed+"x")
	h(&bad)
	if bad.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", bad.Response.StatusCode())
	}
}

func TestIdempotencyRejectsDuplicates(t *testing.T) {
	calls := 0
	status := fasthttp.StatusCreated
	h := Idempotency(memory.NewIdempotencyRepository(), time.Minute, nil)(func(ctx *fasthttp.RequestCtx) {
		calls++
		ctx.SetStatusCode(status)
	})

	post := func(key string) int {
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.SetMethod(fasthttp.MethodPost)
		if key != "" {
			ctx.Request.Header.Set(HeaderIdempotencyKey, key)
		}
		h(&ctx)
		return ctx.Response.StatusCode()
	}

	if code := post("k1"); code != fasthttp.StatusCreated {
		t.Fatalf("first request: %d", code)
	}
	if code := post("k1"); code != fasthttp.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", code)
	}
	if calls != 1 {
		t.Fatalf("duplicate must not reach the handler, got %d calls", calls)
	}

	post("")
	post("")
	if calls != 3 {
		t.Fatalf("requests without a key always pass, got %d calls", calls)
	}

	status = fasthttp.StatusBadRequest
	post("k2")
	status = fasthttp.StatusCreated
	if code := post("k2"); code != fasthttp.StatusCreated {
		t.Fatalf("a failed request releases its key, got %d", code)
	}
}
