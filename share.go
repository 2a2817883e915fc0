package sheetdb

// Role is a sharing role. Anything outside the three constants is invalid
// and reported per recipient.
type Role string

const (
	RoleReader    Role = "reader"
	RoleCommenter Role = "commenter"
	RoleWriter    Role = "writer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleCommenter, RoleWriter:
		return true
	}
	return false
}

// Grant gives one email address a role on a spreadsheet.
type Grant struct {
	Email string `msgpack:"e"`
	Role  Role   `msgpack:"r"`
}

// ShareResult is the per-recipient outcome of Share.
type ShareResult struct {
	Email string
	Role  Role
	Err   error
}

// Share applies grants to a spreadsheet. Recipients are processed
// independently: an invalid role fails that recipient with a *RoleError and
// never aborts the rest. Granting to an already-granted email replaces its
// role.
func (db *DB) Share(id SpreadsheetID, grants []Grant) ([]ShareResult, error) {
	results := make([]ShareResult, 0, len(grants))
	err := db.update(func(tx storageTx) error {
		if _, err := getSpreadsheet(tx, db, id); err != nil {
			return err
		}
		existing, err := loadPermissions(tx, db, id)
		if err != nil {
			return err
		}

		changed := false
		for _, g := range grants {
			res := ShareResult{Email: g.Email, Role: g.Role}
			if !g.Role.Valid() {
				res.Err = &RoleError{Email: g.Email, Role: g.Role}
				results = append(results, res)
				continue
			}
			found := false
			for i := range existing {
				if existing[i].Email == g.Email {
					existing[i].Role = g.Role
					found = true
					break
				}
			}
			if !found {
				existing = append(existing, g)
			}
			changed = true
			results = append(results, res)
		}

		if changed {
			ensure(db.bucket(tx, permissionsBucket).Put(spreadsheetKey(id), encodeRecord(existing)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if db.verbose {
		db.logf("sheetdb: SHARE %d => %d grants", id, len(grants))
	}
	return results, nil
}

// Permissions returns the spreadsheet's current grant list.
func (db *DB) Permissions(id SpreadsheetID) ([]Grant, error) {
	var grants []Grant
	err := db.view(func(tx storageTx) error {
		if _, err := getSpreadsheet(tx, db, id); err != nil {
			return err
		}
		var err error
		grants, err = loadPermissions(tx, db, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func loadPermissions(tx storageTx, db *DB, id SpreadsheetID) ([]Grant, error) {
	raw := db.bucket(tx, permissionsBucket).Get(spreadsheetKey(id))
	if raw == nil {
		return nil, nil
	}
	var grants []Grant
	if err := decodeRecord(raw, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}
