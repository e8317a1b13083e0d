package entity

type Review struct {
	BaseSimple
	ListingID int64  `db:"listing_id"`
	UserName  string `db:"user_name"`
	Rating    int    `db:"rating"` // 1-5
	Comment   string `db:"comment"`
}
