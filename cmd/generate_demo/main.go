// Command generate_demo creates a demo database with a sample hospital
// reading collection.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	store, err := library.NewStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	service := library.NewService(store)

	books := seedBooks(service)
	readers := seedReaders(service)
	seedLoans(service, books, readers)

	log.Printf("Demo database ready: %d books, %d readers, %d loans",
		len(store.Books()), len(store.Readers()), len(store.Loans()))
}

func seedBooks(service *library.Service) []entities.Book {
	inputs := []library.AddBookInput{
		{Title: "Dom Casmurro", Author: "Machado de Assis", Genre: "Fiction", Description: "A classic of Brazilian literature narrated by the jealous Bentinho."},
		{Title: "O Alquimista", Author: "Paulo Coelho", Genre: "Fiction", Description: "A shepherd's journey toward his personal legend."},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "9780553380163", Genre: "Science", Description: "Cosmology for the general reader."},
		{Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", Genre: "Fiction"},
		{Title: "Meditations", Author: "Marcus Aurelius", Genre: "Philosophy"},
		{Title: "Clinical Notes on Recovery", Author: "A. Silva"},
		{Title: "Poemas Escolhidos", Author: "Cecília Meireles", Genre: "Poetry"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780261103344", Genre: "Fantasy"},
	}

	var books []entities.Book
	for _, in := range inputs {
		book, err := service.AddBook(in)
		if err != nil {
			log.Fatalf("Failed to seed book %q: %v", in.Title, err)
		}
		books = append(books, book)
	}
	return books
}

func seedReaders(service *library.Service) []entities.Reader {
	admission := time.Now().AddDate(0, 0, -12)
	inputs := []library.AddReaderInput{
		{Name: "Maria Fernandes", AdmissionDate: &admission, Sector: "Cardiology", Wing: "B", Room: "214", Bed: "2"},
		{Name: "João Pereira", Sector: "Orthopedics", Wing: "A", Room: "103", Bed: "1"},
		{Name: "Ana Souza", Sector: "Oncology", Wing: "C", Room: "307", Bed: "3"},
		{Name: "Carlos Lima", Sector: "Pediatrics", Wing: "A", Room: "118", Bed: "4"},
	}

	var readers []entities.Reader
	for _, in := range inputs {
		reader, err := service.AddReader(in)
		if err != nil {
			log.Fatalf("Failed to seed reader %q: %v", in.Name, err)
		}
		readers = append(readers, reader)
	}
	return readers
}

func seedLoans(service *library.Service, books []entities.Book, readers []entities.Reader) {
	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format(library.DueDateLayout)
	}

	// One overdue, one due soon, one returned
	if _, err := service.CreateLoan(books[0].ID, readers[0].ID, day(-3)); err != nil {
		log.Fatalf("Failed to seed loan: %v", err)
	}
	if _, err := service.CreateLoan(books[2].ID, readers[1].ID, day(7)); err != nil {
		log.Fatalf("Failed to seed loan: %v", err)
	}
	returned, err := service.CreateLoan(books[4].ID, readers[2].ID, day(2))
	if err != nil {
		log.Fatalf("Failed to seed loan: %v", err)
	}
	if _, err := service.ReturnLoan(returned.ID); err != nil {
		log.Fatalf("Failed to return seeded loan: %v", err)
	}
}
