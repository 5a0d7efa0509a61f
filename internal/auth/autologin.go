package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// DeviceTrustWindow is how long a remembered device stays trusted after
// its last explicit login.
const DeviceTrustWindow = 30 * 24 * time.Hour

const deviceCacheExpireSeconds = 60

// ErrAutoLoginDenied is deliberately the only failure surfaced by Resolve:
// a degraded backend must not silently log anybody in, and the login form
// stays available either way.
var ErrAutoLoginDenied = errors.New("auto login denied")

type usersGetter interface {
	Get(ctx context.Context, username string) (*User, error)
}

type devicesGetter interface {
	Get(ctx context.Context, deviceID string) (*DeviceMapping, error)
}

// AutoLoginResolver decides whether a device identifier alone is enough to
// silently authenticate. The device token is a correlation key, not a
// credential: it is only honored while the mapping is fresh, enabled, and
// still points at an existing account.
type AutoLoginResolver struct {
	users   usersGetter
	devices devicesGetter
	cache   *freecache.Cache
	window  time.Duration
}

func NewAutoLoginResolver(users usersGetter, devices devicesGetter) *AutoLoginResolver {
	megabyte := 1024 * 1024
	return &AutoLoginResolver{
		users:   users,
		devices: devices,
		cache:   freecache.NewCache(megabyte),
		window:  DeviceTrustWindow,
	}
}

// Resolve returns the username to silently authenticate as, or ErrAutoLoginDenied.
func (r *AutoLoginResolver) Resolve(ctx context.Context, deviceID string, now time.Time) (string, error) {
	if deviceID == "" {
		return "", ErrAutoLoginDenied
	}

	mapping, err := r.deviceMapping(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, ErrDeviceNotFound) {
			log.Tracef("auto login, get device [%s]: %s", deviceID, err)
		}
		return "", ErrAutoLoginDenied
	}

	if !mapping.AutoLoginEnabled {
		return "", ErrAutoLoginDenied
	}

	if now.Sub(mapping.LastLoginDate) >= r.window {
		return "", ErrAutoLoginDenied
	}

	if _, err := r.users.Get(ctx, mapping.LastUsername); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Tracef("auto login, get user [%s]: %s", mapping.LastUsername, err)
		}
		return "", ErrAutoLoginDenied
	}

	return mapping.LastUsername, nil
}

func (r *AutoLoginResolver) deviceMapping(ctx context.Context, deviceID string) (*DeviceMapping, error) {
	cacheKey := []byte(deviceID)
	if cached, err := r.cache.Get(cacheKey); err == nil {
		var mapping DeviceMapping
		if err := json.Unmarshal(cached, &mapping); err == nil {
			return &mapping, nil
		}
		r.cache.Del(cacheKey)
	}

	mapping, err := r.devices.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if mappingJson, err := json.Marshal(mapping); err == nil {
		if err := r.cache.Set(cacheKey, mappingJson, deviceCacheExpireSeconds); err != nil {
			log.Tracef("auto login, cache device [%s]: %s", deviceID, err)
		}
	}

	return mapping, nil
}

// Forget drops the cached mapping for a device, used after the mapping
// changes (login with remember-me, logout).
func (r *AutoLoginResolver) Forget(deviceID string) {
	r.cache.Del([]byte(deviceID))
}
