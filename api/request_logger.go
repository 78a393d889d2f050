// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/locktrip/go-locktrip/log"
)

// RequestLoggerHandler logs every request before passing it on.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the body can only be read once, so restore it for the next handler
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		logger.Info("api request",
			"timestamp", time.Now().Unix(),
			"uri", r.URL.String(),
			"method", r.Method,
			"body", string(bodyBytes),
		)

		handler.ServeHTTP(w, r)
	})
}
