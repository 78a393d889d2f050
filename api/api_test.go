// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locktrip/go-locktrip/api/governance"
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/dgp/solo"
)

func newTestHandler(t *testing.T, opts Options) http.HandlerFunc {
	config := solo.DefaultConfig()
	reader := dgp.NewVoteReader(solo.NewGateway(config))
	history, err := dgp.NewRewardHistory(nil)
	require.NoError(t, err)
	cache := dgp.NewCache(reader, history)
	pricer := dgp.NewGasPricer(cache, solo.NewOracle(config))

	return New(cache, reader, pricer, opts)
}

func TestRouter(t *testing.T) {
	handler := newTestHandler(t, Options{AllowedOrigins: "*", EnableMetrics: true, EnableReqLogger: true})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/governance/params")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var params []governance.Param
	require.NoError(t, json.NewDecoder(res.Body).Decode(&params))
	assert.Len(t, params, 7)

	res, err = http.Get(ts.URL + "/nosuchpath")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRouterCORS(t *testing.T) {
	handler := newTestHandler(t, Options{AllowedOrigins: "http://localhost"})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/governance/params", nil)
	req.Header.Set("Origin", "http://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "http://localhost", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouterPprof(t *testing.T) {
	handler := newTestHandler(t, Options{AllowedOrigins: "*", PprofOn: true})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/debug/pprof/cmdline")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
