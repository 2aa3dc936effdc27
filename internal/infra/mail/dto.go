package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type WinbackEmailData struct {
	Name               string
	DaysSinceLastVisit int
}
