package config

// DefaultFeatureActions はプロトコル固有の機能アクションと、
// デバイスが宣言していなければならない機能名の対応表。
// プロトコルはコード分岐ではなくこの表の行として扱う。
var DefaultFeatureActions = map[string]string{
	// WiFi (802.11b/g)
	"use_csma_ca":        "use_csma_ca",
	"use_rts_cts":        "use_rts_cts",
	"fragment_frame":     "fragment_frame",
	"enable_power_save":  "enable_power_save",
	"use_short_preamble": "use_short_preamble",
	// WiFi 4 (802.11n)
	"use_40mhz_bonding":     "use_40mhz_bonding",
	"allocate_mimo_streams": "allocate_mimo_streams",
	"use_ampdu":             "use_ampdu",
	"use_amsdu":             "use_amsdu",
	"use_short_gi":          "use_short_gi",
	"enable_stbc":           "enable_stbc",
	// WiFi 7 (802.11be)
	"establish_mlo":                "mlo",
	"configure_mlo_aggregation":    "mlo",
	"use_320mhz_channel":           "320mhz_channel",
	"assign_16x16_mimo":            "16x16_mimo",
	"assign_multi_ru":              "multi_ru",
	"use_4096qam":                  "4096qam",
	"enable_multi_ap_coordination": "multi_ap_coordination",
	"use_punctured_transmission":   "puncturing",
	"enable_emlsr":                 "emlsr",
	// WiFi ad-hoc / enterprise
	"form_ibss":            "form_ibss",
	"discover_peer":        "discover_peer",
	"authorize_tdls":       "authorize_tdls",
	"use_eap_tls":          "use_eap_tls",
	"assign_dynamic_vlan":  "assign_dynamic_vlan",
	"validate_certificate": "validate_certificate",
	// BLE 4.x
	"advertise_le":           "advertise_le",
	"access_gatt_service":    "access_gatt_service",
	"enable_le_encryption":   "enable_le_encryption",
	"enable_privacy":         "enable_privacy",
	"use_secure_connections": "use_secure_connections",
	"extend_data_length":     "extend_data_length",
	// BLE 5.x
	"use_2m_phy":            "use_2m_phy",
	"use_long_range":        "use_long_range",
	"use_extended_adv":      "use_extended_adv",
	"control_tx_power":      "control_tx_power",
	"use_aoa":               "use_aoa",
	"use_aod":               "use_aod",
	"use_lc3_audio":         "use_lc3_audio",
	"use_eatt":              "use_eatt",
	"create_iso_channel":    "create_iso_channel",
	"use_conn_subrating":    "use_conn_subrating",
	"use_pawr":              "use_pawr",
	"enforce_gatt_security": "enforce_gatt_security",
	// Bluetooth Classic
	"use_edr":      "use_edr",
	"create_sco":   "create_sco",
	"create_esco":  "create_esco",
	"enable_sniff": "enable_sniff",
	"use_hs":       "use_hs",
	"use_ertm":     "use_ertm",
	"enable_mesh":  "enable_mesh",
	// Zigbee
	"commission_green_power": "commission_green_power",
	"commission_touchlink":   "commission_touchlink",
	"validate_install_code":  "validate_install_code",
	"use_group_addressing":   "use_group_addressing",
	"fragment_packet":        "fragment_packet",
	"change_channel":         "change_channel",
	"use_source_routing":     "use_source_routing",
	// LoRa
	"open_rx_windows":         "open_rx_windows",
	"use_adr":                 "use_adr",
	"sync_to_beacon":          "sync_to_beacon",
	"configure_ping_slots":    "configure_ping_slots",
	"enable_continuous_rx":    "enable_continuous_rx",
	"send_immediate_downlink": "send_immediate_downlink",
	// LoRaWAN
	"activate_otaa":      "activate_otaa",
	"activate_abp":       "activate_abp",
	"send_rejoin":        "send_rejoin",
	"query_join_server":  "query_join_server",
	"enable_roaming":     "enable_roaming",
	"use_separate_keys":  "use_separate_keys",
	"use_32bit_counters": "use_32bit_counters",
}

// DefaultRateLimits は固定アクションのウィンドウあたり試行上限。
// 機能アクションはFEATURE_RATE_LIMITを適用する。
var DefaultRateLimits = map[string]int{
	"authenticate":       10,
	"connect":            30,
	"transmit":           600,
	"allocate_resources": 10,
	"unknown":            10, // カタログに無いアクション
}
