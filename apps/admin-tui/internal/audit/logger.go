// Package audit は運用コンソールの操作を監査ログとして記録する。
package audit

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/oyaguma3/fleetguard/pkg/logging"
)

// Operation は監査ログの操作種別。
type Operation string

const (
	OpCreate        Operation = "create"
	OpUpdate        Operation = "update"
	OpDelete        Operation = "delete"
	OpImport        Operation = "import"
	OpExport        Operation = "export"
	OpBlacklist     Operation = "blacklist"
	OpUnblacklist   Operation = "unblacklist"
	OpUnblock       Operation = "unblock"
	OpAcknowledge   Operation = "acknowledge"
	OpFalsePositive Operation = "false_positive"
	OpRevoke        Operation = "revoke"
)

// TargetType は操作対象の種別。
type TargetType string

const (
	TargetDevice  TargetType = "device"
	TargetClient  TargetType = "client" // NAS
	TargetNetwork TargetType = "network"
	TargetBlock   TargetType = "block"
	TargetAlert   TargetType = "alert"
	TargetFinding TargetType = "finding"
	TargetNode    TargetType = "node"
)

// auditEventID は監査ログ行を通常ログと区別するイベントID。
const auditEventID = "AUDIT_LOG"

// Record は監査ログ1行分の内容。
type Record struct {
	Op       Operation
	Target   TargetType
	Key      string // Valkeyキー、ファイル名、アラートIDなど
	DeviceID string // 対象デバイスがある場合のみ
	Msg      string
	Details  string
}

// Logger は監査ログをJSON Lines形式で書き出す。
// デバイスIDは追跡のためマスキングしない。
type Logger struct {
	log *slog.Logger
}

// NewLogger はwへ書き出すLoggerを生成する。actorは操作者として全行に付与する。
func NewLogger(w io.Writer, actor string) *Logger {
	return &Logger{
		log: logging.NewLogger(w, "admin-tui", "INFO").
			With(logging.FieldEventID, auditEventID, "admin_user", actor),
	}
}

// Write は1件の監査ログを出力する。
func (l *Logger) Write(r Record) {
	attrs := []any{
		"operation", string(r.Op),
		"target_type", string(r.Target),
		"target_key", r.Key,
	}
	if r.DeviceID != "" {
		attrs = append(attrs, "target_device_id", r.DeviceID)
	}
	if r.Details != "" {
		attrs = append(attrs, "details", r.Details)
	}
	l.log.Info(r.Msg, attrs...)
}

func (l *Logger) crud(op Operation, t TargetType, key, deviceID, verb string) {
	l.Write(Record{Op: op, Target: t, Key: key, DeviceID: deviceID, Msg: string(t) + " " + verb})
}

func (l *Logger) LogCreate(t TargetType, key, deviceID string) { l.crud(OpCreate, t, key, deviceID, "created") }
func (l *Logger) LogUpdate(t TargetType, key, deviceID string) { l.crud(OpUpdate, t, key, deviceID, "updated") }
func (l *Logger) LogDelete(t TargetType, key, deviceID string) { l.crud(OpDelete, t, key, deviceID, "deleted") }

// LogImport はCSVからの一括登録を記録する。countは成功件数。
func (l *Logger) LogImport(t TargetType, count int, filename string) {
	l.Write(Record{Op: OpImport, Target: t, Key: filename, Msg: string(t) + " imported", Details: fmt.Sprintf("count=%d", count)})
}

// LogExport はCSVへの書き出しを記録する。
func (l *Logger) LogExport(t TargetType, count int, filename string) {
	l.Write(Record{Op: OpExport, Target: t, Key: filename, Msg: string(t) + " exported", Details: fmt.Sprintf("count=%d", count)})
}

// LogBlacklist はブラックリストへの登録(on=true)と解除を記録する。
func (l *Logger) LogBlacklist(deviceID string, on bool) {
	r := Record{Op: OpBlacklist, Target: TargetDevice, Key: deviceID, DeviceID: deviceID, Msg: "device blacklisted"}
	if !on {
		r.Op, r.Msg = OpUnblacklist, "device removed from blacklist"
	}
	l.Write(r)
}

func (l *Logger) LogUnblock(deviceID string) {
	l.Write(Record{Op: OpUnblock, Target: TargetBlock, Key: deviceID, DeviceID: deviceID, Msg: "block lifted"})
}

func (l *Logger) LogAcknowledge(alertID, deviceID string) {
	l.Write(Record{Op: OpAcknowledge, Target: TargetAlert, Key: alertID, DeviceID: deviceID, Msg: "alert acknowledged"})
}

func (l *Logger) LogFalsePositive(findingID, deviceID, anomalyType string) {
	l.Write(Record{
		Op: OpFalsePositive, Target: TargetFinding, Key: findingID, DeviceID: deviceID,
		Msg: "finding marked as false positive", Details: "anomaly_type=" + anomalyType,
	})
}

// LogRevoke は証明書シリアルの失効と、それにより無効化されたノード数を記録する。
func (l *Logger) LogRevoke(serial string, deactivated []string) {
	l.Write(Record{
		Op: OpRevoke, Target: TargetNode, Key: serial,
		Msg: "certificate serial revoked", Details: fmt.Sprintf("deactivated=%d", len(deactivated)),
	})
}
