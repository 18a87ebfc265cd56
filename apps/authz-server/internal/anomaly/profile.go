package anomaly

import (
	"fmt"
	"math"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// MetricRange は観測値として妥当な範囲を表す。
type MetricRange struct {
	Min float64
	Max float64
}

// Contains は値が範囲内かを返す。
func (r MetricRange) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

// Threshold は指標の異常度を0〜100に写像する。
// Onsetで0、Criticalで90となる線形写像で、Critical < Onsetの場合は値の低下を異常とみなす。
type Threshold struct {
	Metric   string
	Onset    float64
	Critical float64
}

// Score は値に対応する異常度を返す。
func (t Threshold) Score(v float64) float64 {
	score := 90 * (v - t.Onset) / (t.Critical - t.Onset)
	return math.Max(0, math.Min(100, score))
}

// AnomalyProfile は異常種別ごとの主指標と裏付け指標を表す。
type AnomalyProfile struct {
	Primary    Threshold
	Supporting []Threshold
}

// ProtocolProfile はプロトコルごとの指標範囲と異常種別を表す。
type ProtocolProfile struct {
	Protocol  string
	Metrics   map[string]MetricRange
	Anomalies map[string]AnomalyProfile
}

// 全プロトコル共通の信号品質指標（0〜1）
const metricSignalQuality = "signal_quality"

var (
	rangeRate    = MetricRange{Min: 0, Max: 100000}
	rangeRatio   = MetricRange{Min: 0, Max: 1}
	rangeRSSI    = MetricRange{Min: -120, Max: 0}
	rangeSNR     = MetricRange{Min: -30, Max: 30}
	rangeCounter = MetricRange{Min: 0, Max: 1000000}
	rangeLQI     = MetricRange{Min: 0, Max: 255}
)

// DefaultProfiles はプロトコルごとの既定プロファイル。
var DefaultProfiles = map[string]ProtocolProfile{
	model.ProtocolWiFi: {
		Protocol: model.ProtocolWiFi,
		Metrics: map[string]MetricRange{
			"deauth_rate":       rangeRate,
			"beacon_rate":       rangeRate,
			"probe_rate":        rangeRate,
			"auth_failures":     rangeCounter,
			"retry_rate":        rangeRatio,
			"rssi":              rangeRSSI,
			metricSignalQuality: rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"deauth_flood": {
				Primary: Threshold{"deauth_rate", 5, 100},
				Supporting: []Threshold{
					{"retry_rate", 0.2, 0.8},
					{"auth_failures", 3, 50},
				},
			},
			"rogue_ap": {
				Primary:    Threshold{"beacon_rate", 20, 200},
				Supporting: []Threshold{{"rssi", -70, -30}},
			},
			"auth_bruteforce": {
				Primary:    Threshold{"auth_failures", 5, 100},
				Supporting: []Threshold{{"probe_rate", 10, 200}},
			},
		},
	},
	model.ProtocolBLE: {
		Protocol: model.ProtocolBLE,
		Metrics: map[string]MetricRange{
			"adv_rate":            rangeRate,
			"connection_attempts": rangeCounter,
			"pairing_failures":    rangeCounter,
			"rssi":                rangeRSSI,
			metricSignalQuality:   rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"adv_flood": {
				Primary:    Threshold{"adv_rate", 50, 1000},
				Supporting: []Threshold{{"rssi", -80, -40}},
			},
			"pairing_bruteforce": {
				Primary:    Threshold{"pairing_failures", 3, 50},
				Supporting: []Threshold{{"connection_attempts", 10, 200}},
			},
		},
	},
	model.ProtocolBluetooth: {
		Protocol: model.ProtocolBluetooth,
		Metrics: map[string]MetricRange{
			"inquiry_rate":      rangeRate,
			"pairing_failures":  rangeCounter,
			"rssi":              rangeRSSI,
			metricSignalQuality: rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"pairing_bruteforce": {
				Primary:    Threshold{"pairing_failures", 3, 50},
				Supporting: []Threshold{{"inquiry_rate", 5, 100}},
			},
		},
	},
	model.ProtocolZigbee: {
		Protocol: model.ProtocolZigbee,
		Metrics: map[string]MetricRange{
			"frame_counter_regressions": rangeCounter,
			"nwk_key_failures":          rangeCounter,
			"channel_busy":              rangeRatio,
			"lqi":                       rangeLQI,
			metricSignalQuality:         rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"replay": {
				Primary:    Threshold{"frame_counter_regressions", 1, 20},
				Supporting: []Threshold{{"nwk_key_failures", 1, 20}},
			},
			"jamming": {
				Primary:    Threshold{"channel_busy", 0.3, 0.95},
				Supporting: []Threshold{{"lqi", 200, 50}},
			},
		},
	},
	model.ProtocolLoRa: {
		Protocol: model.ProtocolLoRa,
		Metrics: map[string]MetricRange{
			"channel_busy":      rangeRatio,
			"snr":               rangeSNR,
			metricSignalQuality: rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"jamming": {
				Primary:    Threshold{"channel_busy", 0.3, 0.95},
				Supporting: []Threshold{{"snr", 0, -20}},
			},
		},
	},
	model.ProtocolLoRaWAN: {
		Protocol: model.ProtocolLoRaWAN,
		Metrics: map[string]MetricRange{
			"join_requests":     rangeRate,
			"fcnt_regressions":  rangeCounter,
			"mic_failures":      rangeCounter,
			"snr":               rangeSNR,
			metricSignalQuality: rangeRatio,
		},
		Anomalies: map[string]AnomalyProfile{
			"join_flood": {
				Primary:    Threshold{"join_requests", 10, 500},
				Supporting: []Threshold{{"mic_failures", 1, 50}},
			},
			"replay": {
				Primary:    Threshold{"fcnt_regressions", 1, 20},
				Supporting: []Threshold{{"mic_failures", 1, 50}},
			},
		},
	},
}

// Validate はテレメトリがプロファイルの指標定義と範囲を満たすかを検証する。
func (p ProtocolProfile) Validate(t *model.Telemetry) error {
	ap, ok := p.Anomalies[t.AnomalyType]
	if !ok {
		return fmt.Errorf("anomaly type %q is not defined for %s", t.AnomalyType, p.Protocol)
	}
	for name, v := range t.Metrics {
		r, ok := p.Metrics[name]
		if !ok {
			return fmt.Errorf("metric %q is not defined for %s", name, p.Protocol)
		}
		if !r.Contains(v) {
			return fmt.Errorf("metric %q=%v out of range [%v,%v]", name, v, r.Min, r.Max)
		}
	}
	if _, ok := t.Metrics[ap.Primary.Metric]; !ok {
		return fmt.Errorf("primary metric %q is required for %s", ap.Primary.Metric, t.AnomalyType)
	}
	return nil
}

// Assess は異常度と信頼度を算出する。Validate済みのテレメトリを前提とする。
// 信頼度は裏付け指標の一致割合と信号品質から求める。
func (p ProtocolProfile) Assess(t *model.Telemetry) (score, confidence float64) {
	ap := p.Anomalies[t.AnomalyType]
	score = ap.Primary.Score(t.Metrics[ap.Primary.Metric])

	agreement := 0.0
	if len(ap.Supporting) > 0 {
		agreeing := 0
		for _, th := range ap.Supporting {
			if v, ok := t.Metrics[th.Metric]; ok && th.Score(v) > 0 {
				agreeing++
			}
		}
		agreement = float64(agreeing) / float64(len(ap.Supporting))
	}

	quality := 1.0
	if q, ok := t.Metrics[metricSignalQuality]; ok {
		quality = q
	}
	confidence = quality * (0.55 + 0.45*agreement)
	return round2(score), round2(confidence)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
