package cli

import (
	"github.com/viant/rag"
)

type Options struct {
	Client     rag.ClientOptions `group:"client"`
	ConfigURL  string            `short:"c" long:"config" description:"YAML client options URL"`
	EnvFile    string            `short:"e" long:"env" description:"dotenv file" default:".env"`
	Register   RegisterCommand   `command:"register" description:"create an account and log in"`
	Login      LoginCommand      `command:"login" description:"log in"`
	Logout     struct{}          `command:"logout" description:"end the session"`
	Whoami     struct{}          `command:"whoami" description:"show the logged in user"`
	Documents  struct{}          `command:"documents" description:"list documents"`
	Upload     UploadCommand     `command:"upload" description:"upload a document"`
	Delete     DocumentCommand   `command:"delete-document" description:"delete a document"`
	Ask        AskCommand        `command:"ask" description:"ask a question about a document"`
	History    DocumentCommand   `command:"history" description:"show document question history"`
	Faculty    FacultyUpload     `command:"faculty-upload" description:"upload a faculty list"`
	Batches    struct{}          `command:"faculty-batches" description:"list faculty upload batches"`
	Profile    FacultyCommand    `command:"faculty-profile" description:"show a faculty profile"`
	Export     ExportCommand     `command:"faculty-export" description:"export a faculty profile"`
	ServeMock  ServeMockCommand  `command:"serve-mock" description:"serve an in-memory API for local testing"`
}

type RegisterCommand struct {
	FirstName string `long:"first-name" description:"first name" required:"true"`
	LastName  string `long:"last-name" description:"last name" required:"true"`
	Email     string `long:"email" description:"account email" required:"true"`
	Password  string `long:"password" description:"account password, RAG_PASSWORD if empty"`
}

type LoginCommand struct {
	Email       string `long:"email" description:"account email"`
	Password    string `long:"password" description:"account password, RAG_PASSWORD if empty"`
	Credentials string `long:"credentials" description:"scy basic credentials URL, optionally suffixed with |key (blowfish://default if omitted)"`
}

type UploadCommand struct {
	Positional struct {
		URL string `positional-arg-name:"location" description:"local path or afs URL"`
	} `positional-args:"yes" required:"yes"`
}

type DocumentCommand struct {
	ID int64 `short:"d" long:"document" description:"document id" required:"true"`
}

type AskCommand struct {
	DocumentCommand
	Question string `short:"q" long:"question" description:"question" required:"true"`
}

type FacultyUpload struct {
	UploadCommand
	ArticlesLimit int `short:"l" long:"limit" description:"max articles per faculty member"`
}

type FacultyCommand struct {
	ID string `short:"f" long:"faculty" description:"faculty id" required:"true"`
}

type ExportCommand struct {
	FacultyCommand
	Format string `long:"format" description:"report format" choice:"word" choice:"excel" default:"word"`
	Dest   string `short:"o" long:"output" description:"destination URL, the report file name in the working directory if empty"`
}

type ServeMockCommand struct {
	Addr    string   `short:"a" long:"addr" description:"listen address" default:"localhost:8081"`
	Users   []string `long:"user" description:"seeded account as email:password"`
	Faculty []string `long:"faculty" description:"seeded faculty member as id:name"`
}
