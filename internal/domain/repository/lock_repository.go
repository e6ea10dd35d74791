package repository

import "time"

// LockRepository serializa as invariantes cujo escopo cruza materiais: duas
// operações que compartilham coletador, parceira, cliente ou o dia da
// organização precisam enfileirar mesmo quando miram materiais diferentes.
// Os locks valem até o fim da transação; adquirir sempre depois do lock do
// material, na ordem material -> parte -> dia, para não haver deadlock.
type LockRepository interface {
	// LockStaff bloqueia a linha do coletador (teto mensal por coletador).
	LockStaff(id string) error
	// LockPartner bloqueia a linha da parceira (uma remessa por parceira por dia).
	LockPartner(id string) error
	// LockClient bloqueia a linha do cliente (uma coleta por par cliente/coletador por dia).
	LockClient(id string) error
	// LockDay serializa o teto diário da organização inteira via lock
	// consultivo transacional com chave derivada do dia civil.
	LockDay(day time.Time) error
}
