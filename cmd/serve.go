package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/model"
	"github.com/bareebaree/transmuseTATE/vocab"
)

var trainedVocab *vocab.Vocabulary

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the trained vocabulary over HTTP",
	Long:  `Serves the trained vocabulary over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles loads the vocabulary artifact the handlers depend on.
func LoadServeFiles() {
	path := filepath.Join(constants.GetResultsDir(), constants.VocabFileName)
	v, err := vocab.Load(path)
	if err != nil {
		panic("Could not load vocabulary artifact: " + err.Error())
	}
	trainedVocab = v
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func HandleEncode(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Could not read request body", 400)
		return
	}

	var input model.EncodeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		fmt.Println("Could not unmarshal request body: " + err.Error())
		writeError(w, "Bad request body", 400)
		return
	}

	res := model.EncodeResponse{IDs: trainedVocab.Encode(input.Tokens)}
	json.NewEncoder(w).Encode(res)
}

func HandleVocabStats(w http.ResponseWriter, r *http.Request) {
	res := model.VocabStatsResponse{
		Size:          trainedVocab.Size(),
		SpecialTokens: trainedVocab.Config().SpecialTokens,
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	LoadServeFiles()

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/encode", HandleEncode).Methods("POST")
	router.HandleFunc("/vocab", HandleVocabStats).Methods("GET")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
