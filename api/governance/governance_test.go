// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package governance_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locktrip/go-locktrip/api/governance"
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/dgp/solo"
	"github.com/locktrip/go-locktrip/loc"
)

const soloConfig = `
params:
  burnRate: 10
vote:
  param: burnRate
  value: 20
  votesFor: 3
  votesAgainst: 1
  startBlock: 5000
  blocksExpiration: 960
  threshold: 3
gasPrice: 1000000
locPerCent: 3
rewardVotes:
  - height: 1000
    percentage: 10
`

var ts *httptest.Server

func TestGovernance(t *testing.T) {
	initServer(t)
	defer ts.Close()

	t.Run("getParams", testGetParams)
	t.Run("getParam", testGetParam)
	t.Run("getParamBadName", testGetParamBadName)
	t.Run("getParamNotVotable", testGetParamNotVotable)
	t.Run("getVote", testGetVote)
	t.Run("getRewardPercentage", testGetRewardPercentage)
	t.Run("getRewardPercentageBadHeight", testGetRewardPercentageBadHeight)
	t.Run("getGasPrice", testGetGasPrice)
	t.Run("getBytePrice", testGetBytePrice)
	t.Run("convertThreshold", testConvertThreshold)
}

func initServer(t *testing.T) {
	config, err := solo.LoadConfig(strings.NewReader(soloConfig))
	require.NoError(t, err)

	reader := dgp.NewVoteReader(solo.NewGateway(config))
	history, err := dgp.NewRewardHistory(nil)
	require.NoError(t, err)
	cache := dgp.NewCache(reader, history)
	require.NoError(t, cache.SeedRewardHistory())
	cache.Refresh(100)
	pricer := dgp.NewGasPricer(cache, solo.NewOracle(config))

	router := mux.NewRouter()
	governance.New(cache, reader, pricer).Mount(router, "/governance")
	ts = httptest.NewServer(router)
}

func httpGet(t *testing.T, path string, wantStatus int) []byte {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, wantStatus, res.StatusCode, path)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body
}

func testGetParams(t *testing.T) {
	body := httpGet(t, "/governance/params", 200)
	var params []governance.Param
	require.NoError(t, json.Unmarshal(body, &params))

	require.Len(t, params, 7)
	byName := make(map[string]governance.Param)
	for _, p := range params {
		byName[p.Name] = p
	}
	assert.Equal(t, uint64(10), byName["burnRate"].Value)
	assert.Equal(t, loc.DefaultBlockSize, byName["blockSize"].Value)
}

func testGetParam(t *testing.T) {
	body := httpGet(t, "/governance/params/burnRate", 200)
	var param governance.Param
	require.NoError(t, json.Unmarshal(body, &param))

	assert.Equal(t, uint64(10), param.Value)
	assert.Equal(t, loc.DefaultBurnRate, param.Default)
	assert.Equal(t, loc.MaxBurnRate, param.Max)
	assert.Equal(t, uint64(100), param.RefreshedAt)
}

func testGetParamBadName(t *testing.T) {
	httpGet(t, "/governance/params/notAParam", 400)
}

func testGetParamNotVotable(t *testing.T) {
	httpGet(t, "/governance/params/adminVote", 400)
}

func testGetVote(t *testing.T) {
	body := httpGet(t, "/governance/vote", 200)
	var status governance.VoteStatus
	require.NoError(t, json.Unmarshal(body, &status))

	assert.True(t, status.InProgress)
	require.NotNil(t, status.Vote)
	assert.Equal(t, loc.BurnRate, status.Vote.Param)
	assert.Equal(t, uint64(20), status.Vote.ParamValue)
	assert.Equal(t, uint64(5960), status.Vote.ExpirationBlock)
	assert.Equal(t, "Vote for burn rate % change", status.Vote.Headline)
}

func testGetRewardPercentage(t *testing.T) {
	body := httpGet(t, "/governance/rewardpercentage/1500", 200)
	var reward governance.RewardPercentage
	require.NoError(t, json.Unmarshal(body, &reward))
	assert.Equal(t, uint8(10), reward.Percentage)

	body = httpGet(t, "/governance/rewardpercentage/999", 200)
	require.NoError(t, json.Unmarshal(body, &reward))
	assert.Equal(t, uint8(loc.DefaultBlockRewardPercentage), reward.Percentage)
}

func testGetRewardPercentageBadHeight(t *testing.T) {
	httpGet(t, "/governance/rewardpercentage/notanumber", 400)
}

func testGetGasPrice(t *testing.T) {
	body := httpGet(t, "/governance/gasprice", 200)
	var quote dgp.Quote
	require.NoError(t, json.Unmarshal(body, &quote))

	base := loc.OneCentEqual
	assert.Equal(t, base, quote.OraclePrice)
	assert.Equal(t, uint64(10), quote.BurnRatePct)
	// buffer margin grows with the voted burn rate
	assert.Equal(t, base+base*110/500+base%5, quote.EffectivePrice)
}

func testGetBytePrice(t *testing.T) {
	body := httpGet(t, "/governance/byteprice", 200)
	var res map[string]uint64
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, loc.DefaultMinBytePrice, res["bytePrice"])
}

func testConvertThreshold(t *testing.T) {
	body := httpGet(t, "/governance/threshold/100", 200)
	var res map[string]uint64
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 100*loc.OneCentEqual*3, res["loc"])
}
