package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/shareit/internal/config"
)

// ResponseCache caches successful responses in Redis. Entries are keyed
// under a generation number; Invalidate bumps the generation so every
// earlier entry stops being read and expires on its own.
type ResponseCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

// NewResponseCache returns nil when caching is disabled or Redis is absent;
// the nil cache's middleware is a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) *ResponseCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &ResponseCache{cfg: cfg, rdb: rdb}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// captureWriter copies up to limit bytes of the body while forwarding it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if remain := cw.limit - cw.size; cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain > 0 {
		cw.buf.Write(b[:min(int64(len(b)), remain)])
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

func (rc *ResponseCache) genKey() string { return rc.cfg.Prefix + ":gen" }

func (rc *ResponseCache) generation(ctx context.Context) (int64, error) {
	n, err := rc.rdb.Get(ctx, rc.genKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// cacheKey hashes route and query so the key length stays bounded.
func (rc *ResponseCache) cacheKey(gen int64, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(strings.Join([]string{r.Method, c.Path(), r.URL.Query().Encode()}, "|")))
	return fmt.Sprintf("%s:%d:%x", rc.cfg.Prefix, gen, sum[:])
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdr, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdr)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
	copy(out[8:], hdr)
	copy(out[8+len(hdr):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = http.Header{}
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// Middleware serves cached responses and stores fresh 200 responses.
// Redis failures degrade to an uncached request.
func (rc *ResponseCache) Middleware() echo.MiddlewareFunc {
	if rc == nil {
		return passThrough
	}
	maxBody := int64(rc.cfg.MaxBodyBytes)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rc.cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			ctx := c.Request().Context()
			gen, err := rc.generation(ctx)
			if err != nil {
				return next(c)
			}
			key := rc.cacheKey(gen, c)

			if bs, err := rc.rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) || strings.EqualFold(k, echo.HeaderXRequestID) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(status, c.Response().Header().Get(echo.HeaderContentType), body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
				_ = rc.rdb.Set(context.WithoutCancel(ctx), key, payload, rc.cfg.TTL).Err()
			}
			return nil
		}
	}
}

// Invalidate bumps the cache generation after a successful write so the
// next read misses.
func (rc *ResponseCache) Invalidate() echo.MiddlewareFunc {
	if rc == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil && c.Response().Status < http.StatusBadRequest {
				_ = rc.rdb.Incr(context.WithoutCancel(c.Request().Context()), rc.genKey()).Err()
			}
			return err
		}
	}
}
