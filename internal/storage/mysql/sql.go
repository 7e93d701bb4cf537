package mysql

// One row per hotel; doc holds the same JSON document the file store writes.
const createHotelsSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  id         VARCHAR(64)  NOT NULL,
  doc        JSON         NOT NULL,
  created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const upsertHotelSQL = `
INSERT INTO hotels (id, doc)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  doc        = VALUES(doc),
  updated_at = CURRENT_TIMESTAMP
`

const existsHotelSQL = `SELECT 1 FROM hotels WHERE id = ? LIMIT 1`

const getHotelSQL = `SELECT doc FROM hotels WHERE id = ?`

const listHotelIDsSQL = `SELECT id FROM hotels ORDER BY id`

const listHotelsSQL = `SELECT id, doc FROM hotels ORDER BY id`
