package csv

import (
	"io"

	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// ClientCSVHeader はRADIUSクライアントCSVのヘッダー行。network_idは省略できる。
var ClientCSVHeader = []string{"ip", "secret", "name", "network_id"}

var clientLayout = layout{header: ClientCSVHeader, required: 3, keyName: "ip"}

func clientKey(c *model.RadiusClient) string { return c.IP }

// ParseClientCSV はRADIUSクライアントCSVを読み込む。
// 不正な行は行番号付きのエラーとして返し、有効な行は取り込み対象として返す。
func ParseClientCSV(r io.Reader) ([]*model.RadiusClient, []error) {
	return parseAll(r, clientLayout, parseClientRow, clientKey)
}

func parseClientRow(rec row) (*model.RadiusClient, []error) {
	input := validation.NormalizeClientInput(&validation.ClientInput{
		IP:        rec.col(0),
		Secret:    rec.col(1),
		Name:      rec.col(2),
		NetworkID: rec.col(3),
	})
	if verrs := validation.ValidateClient(input); len(verrs) > 0 {
		return nil, verrs
	}
	return model.NewRadiusClient(input.IP, input.Secret, input.Name, input.NetworkID), nil
}

// WriteClientCSV はRADIUSクライアントをCSVとして書き込む。
func WriteClientCSV(w io.Writer, clients []*model.RadiusClient) error {
	return writeAll(w, clientLayout, clients, func(c *model.RadiusClient) []string {
		return []string{c.IP, c.Secret, c.Name, c.NetworkID}
	}, clientKey)
}
