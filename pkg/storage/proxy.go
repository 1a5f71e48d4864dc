package storage

import "safari_go/models"

func (db *DB) GetProxyByID(id int) (*models.Proxy, error) {
	var p models.Proxy
	err := db.Conn.QueryRow(
		`SELECT id, ip, port, login, password FROM proxies WHERE id = $1`, id).
		Scan(&p.ID, &p.IP, &p.Port, &p.Login, &p.Password)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) CreateProxy(p models.Proxy) (*models.Proxy, error) {
	err := db.Conn.QueryRow(
		`INSERT INTO proxies (ip, port, login, password) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.IP, p.Port, p.Login, p.Password).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
